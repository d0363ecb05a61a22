package handler

import (
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

type bookResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listBooksResponse struct {
	Items      []bookResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// Mapping is deliberately explicit, field by field. No reflection-based
// object mapper sits between storage records and transfer objects.

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Name:        b.Name,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListBooksResult) listBooksResponse {
	items := make([]bookResponse, len(r.Items))
	for i, b := range r.Items {
		items[i] = toBookResponse(b)
	}
	return listBooksResponse{
		Items: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
