package http

import (
	"net/http"

	"bookcatalog/internal/events"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

// NewRouter wires every route of the service. Registration and login are
// open; the catalog and the event stream sit behind the bearer-token guard.
func NewRouter(secret string, directory usecase.UserDirectory, books usecase.BookStore, bus *events.Bus) http.Handler {
	authHandler := NewAuthHandler(directory, secret)
	bookHandler := NewBookHandler(books, bus)
	eventsHandler := NewEventsHandler(bus)

	router := http.NewServeMux()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
	})

	router.HandleFunc("/register", authHandler.Register)
	router.HandleFunc("/token", authHandler.Token)

	requireAuth := httpx.AuthMiddleware(secret, directory)
	router.Handle("/books/", requireAuth(http.HandlerFunc(bookHandler.Route)))
	router.Handle("/events", requireAuth(http.HandlerFunc(eventsHandler.Stream)))

	return router
}
