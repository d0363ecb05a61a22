package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// Sort orders accepted by the book list endpoint.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ListBooksFilter carries all query parameters for listing books.
type ListBooksFilter struct {
	Search string // optional: contains-match on name or author
	Sort   string // optional: SortPriceAsc or SortPriceDesc; default newest first
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the service)
}

// BookRepository defines persistence operations for catalog entries.
// Create and Update must fail with domain.ErrBookExists when the name
// collides with another book (unique index on name).
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// List returns a page of books matching filter and the total count.
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
}
