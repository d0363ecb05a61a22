package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// CreateBookInput carries all data needed to add a book to the catalog.
type CreateBookInput struct {
	Name        string
	Author      string
	Description string
	Price       float64
}

// UpdateBookInput is a partial update: nil fields are left unchanged.
type UpdateBookInput struct {
	Name        *string
	Author      *string
	Description *string
	Price       *float64
}

// ListBooksInput carries all parameters for the list endpoint.
type ListBooksInput struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

// ListBooksResult is returned by ListBooks.
type ListBooksResult struct {
	Items      []*domain.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookService defines use-case operations over the catalog.
type BookService interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, input ListBooksInput) (*ListBooksResult, error)
	UpdateBook(ctx context.Context, id string, input UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
