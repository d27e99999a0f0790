package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

// Notifier receives a one-line description of every completed mutation.
type Notifier interface {
	Publish(msg string)
}

type BookHandler struct {
	store usecase.BookStore
	bus   Notifier
}

func NewBookHandler(store usecase.BookStore, bus Notifier) *BookHandler {
	return &BookHandler{store: store, bus: bus}
}

type bookCreateReq struct {
	Title         string `json:"title" validate:"required,max=500"`
	Author        string `json:"author" validate:"required,max=255"`
	PublishedDate string `json:"published_date" validate:"required,datetime=2006-01-02"`
	Summary       string `json:"summary"`
	Genre         string `json:"genre" validate:"max=100"`
}

func (req bookCreateReq) toBook() entity.Book {
	date, _ := entity.ParseDate(req.PublishedDate) // validated upstream
	return entity.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: date,
		Summary:       req.Summary,
		Genre:         req.Genre,
	}
}

// pageResponse is a bounded slice of the catalog plus its metadata.
type pageResponse struct {
	Items []entity.Book `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

// Route dispatches /books/ requests: the bare collection path handles
// create and list, anything beyond it is treated as a book ID.
func (h *BookHandler) Route(w http.ResponseWriter, r *http.Request) {
	const prefix = "/books/"
	if r.URL.Path == prefix {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodGet:
			h.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.Update(w, r, id)
	case http.MethodDelete:
		h.Delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	book := req.toBook()
	if err := h.store.Insert(r.Context(), &book); err != nil {
		log.Printf("insert book failed: %v", err)
		httpx.JSONInternalError(w)
		return
	}

	h.bus.Publish(fmt.Sprintf("New book added: %s", book.Title))
	httpx.JSON(w, http.StatusOK, book)
}

// List serves both the by-ID lookup (?id=) and the paginated listing.
// Only the by-ID branch publishes a notification; a full listing would
// spam the bus.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if rawID := query.Get("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid book id")
			return
		}
		book, err := h.store.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "Book not found")
				return
			}
			log.Printf("get book failed: id=%d err=%v", id, err)
			httpx.JSONInternalError(w)
			return
		}

		h.bus.Publish(fmt.Sprintf("Book found: %s", book.Title))
		httpx.JSON(w, http.StatusOK, pageResponse{
			Items: []entity.Book{book},
			Total: 1,
			Page:  1,
			Size:  1,
		})
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(query.Get("size"))
	if size < 1 || size > 100 {
		size = 20
	}

	books, total, err := h.store.ListPage(r.Context(), page, size)
	if err != nil {
		log.Printf("list books failed: %v", err)
		httpx.JSONInternalError(w)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}

	httpx.JSON(w, http.StatusOK, pageResponse{
		Items: books,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req bookCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	book := req.toBook()
	book.ID = id
	if err := h.store.Update(r.Context(), &book); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("update book failed: id=%d err=%v", id, err)
		httpx.JSONInternalError(w)
		return
	}

	h.bus.Publish(fmt.Sprintf("Book updated: %s", book.Title))
	httpx.JSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	// Fetch first so the notification can name the title.
	book, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("get book failed: id=%d err=%v", id, err)
		httpx.JSONInternalError(w)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("delete book failed: id=%d err=%v", id, err)
		httpx.JSONInternalError(w)
		return
	}

	h.bus.Publish(fmt.Sprintf("Book deleted: %s", book.Title))
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}
