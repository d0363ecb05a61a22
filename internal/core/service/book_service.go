package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// BookService implements catalog use cases over the book repository.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if input.Name == "" || input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Name:        input.Name,
		Author:      input.Author,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("book_id", created.ID).Str("name", created.Name).Msg("book created")
	return created, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	sort := input.Sort
	if sort != ports.SortPriceAsc && sort != ports.SortPriceDesc {
		sort = ""
	}

	items, total, err := s.repo.List(ctx, ports.ListBooksFilter{
		Search: input.Search,
		Sort:   sort,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListBooksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateBook applies a partial update: only non-nil input fields change.
func (s *BookService) UpdateBook(ctx context.Context, id string, input ports.UpdateBookInput) (*domain.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		book.Name = *input.Name
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		book.Price = *input.Price
	}
	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("book_id", id).Msg("book deleted")
	return nil
}
