package http

import (
	"fmt"
	"net/http"

	"bookcatalog/internal/events"
	"bookcatalog/internal/httpx"
)

type EventsHandler struct {
	bus *events.Bus
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream is a server-sent-events endpoint: it holds the connection open
// and forwards every catalog notification published after the client
// connected. Disconnecting cancels the request context, which releases
// the subscription without touching other subscribers.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpx.JSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.bus.Subscribe()
	defer sub.Close()

	for {
		msg, err := sub.Next(r.Context())
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", msg)
		flusher.Flush()
	}
}
