package store

// BookStore implementation (Postgres)

import (
	"context"
	"errors"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Insert(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (title, author, published_date, summary, genre)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	return r.db.QueryRow(ctx, query, b.Title, b.Author, b.PublishedDate, b.Summary, b.Genre).Scan(&b.ID)
}

func (r *BookPG) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	const query = `
	SELECT id, title, author, published_date, summary, genre
	FROM books
	WHERE id = $1
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Summary, &b.Genre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) ListPage(ctx context.Context, page, size int) ([]entity.Book, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
	SELECT id, title, author, published_date, summary, genre
	FROM books
	ORDER BY id
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Summary, &b.Genre); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	const query = `
	UPDATE books
	SET title = $2, author = $3, published_date = $4, summary = $5, genre = $6
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, b.ID, b.Title, b.Author, b.PublishedDate, b.Summary, b.Genre)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *BookPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
