package usecase

import (
	"context"
	"errors"

	"bookcatalog/internal/entity"
)

var ErrNotFound = errors.New("not found")

// BookStore is the persistence contract for the catalog. IDs are assigned
// by the store, never by callers.
type BookStore interface {
	// Insert stores a new book and fills in its assigned ID.
	Insert(ctx context.Context, b *entity.Book) error
	// GetByID returns ErrNotFound when no book has the given ID.
	GetByID(ctx context.Context, id int64) (entity.Book, error)
	// ListPage returns one page of books in insertion (ID) order plus the
	// total number of books in the catalog.
	ListPage(ctx context.Context, page, size int) ([]entity.Book, int, error)
	// Update replaces every mutable field. ErrNotFound when the ID is absent.
	Update(ctx context.Context, b *entity.Book) error
	// Delete returns ErrNotFound when the ID is absent.
	Delete(ctx context.Context, id int64) error
}
