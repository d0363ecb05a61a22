package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

type stubBookService struct {
	book      *domain.Book
	list      *ports.ListBooksResult
	err       error
	lastInput ports.ListBooksInput
	lastID    string
	lastPatch ports.UpdateBookInput
}

func (s *stubBookService) CreateBook(_ context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Book{
		ID:          "b1",
		Name:        input.Name,
		Author:      input.Author,
		Description: input.Description,
		Price:       input.Price,
	}, nil
}

func (s *stubBookService) GetBook(_ context.Context, id string) (*domain.Book, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.book, nil
}

func (s *stubBookService) ListBooks(_ context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubBookService) UpdateBook(_ context.Context, id string, input ports.UpdateBookInput) (*domain.Book, error) {
	s.lastID = id
	s.lastPatch = input
	if s.err != nil {
		return nil, s.err
	}
	return s.book, nil
}

func (s *stubBookService) DeleteBook(_ context.Context, id string) error {
	s.lastID = id
	return s.err
}

func TestBookHandler_Create(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, rec := newJSONContext(http.MethodPost, "/v1/books", `{"name":"Dune","author":"Frank Herbert","price":19.99}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp bookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID != "b1" || resp.Name != "Dune" || resp.Price != 19.99 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookHandler_Create_MissingName(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newJSONContext(http.MethodPost, "/v1/books", `{"author":"Frank Herbert","price":19.99}`)
	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing name, got %v", err)
	}
}

func TestBookHandler_Create_NegativePrice(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newJSONContext(http.MethodPost, "/v1/books", `{"name":"Dune","author":"Frank Herbert","price":-1}`)
	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative price, got %v", err)
	}
}

func TestBookHandler_Get(t *testing.T) {
	svc := &stubBookService{book: &domain.Book{ID: "b1", Name: "Dune", Author: "Frank Herbert"}}
	h := NewBookHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/v1/books/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastID != "b1" {
		t.Fatalf("expected lookup by b1, got %q", svc.lastID)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	h := NewBookHandler(&stubBookService{err: domain.ErrBookNotFound})

	c, _ := newJSONContext(http.MethodGet, "/v1/books/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_List_PassesQueryParams(t *testing.T) {
	svc := &stubBookService{list: &ports.ListBooksResult{
		Items: []*domain.Book{{ID: "b1", Name: "Dune"}},
		Total: 1, Page: 2, Limit: 10, TotalPages: 1,
	}}
	h := NewBookHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/v1/books?search=dune&sort=price_desc&page=2&limit=10", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := ports.ListBooksInput{Search: "dune", Sort: "price_desc", Page: 2, Limit: 10}
	if svc.lastInput != want {
		t.Fatalf("unexpected list input: %+v", svc.lastInput)
	}

	var resp listBooksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Pagination.Total != 1 || resp.Pagination.Page != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookHandler_Update_PartialBody(t *testing.T) {
	svc := &stubBookService{book: &domain.Book{ID: "b1", Name: "Dune", Price: 9.99}}
	h := NewBookHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/v1/books/b1", `{"price":9.99}`)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPatch.Name != nil || svc.lastPatch.Author != nil || svc.lastPatch.Description != nil {
		t.Fatalf("absent fields must map to nil, got %+v", svc.lastPatch)
	}
	if svc.lastPatch.Price == nil || *svc.lastPatch.Price != 9.99 {
		t.Fatalf("expected price pointer set to 9.99, got %+v", svc.lastPatch.Price)
	}
}

func TestBookHandler_Update_EmptyName(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newJSONContext(http.MethodPut, "/v1/books/b1", `{"name":""}`)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	err := h.Update(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty name, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c, rec := newJSONContext(http.MethodDelete, "/v1/books/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.lastID != "b1" {
		t.Fatalf("expected delete of b1, got %q", svc.lastID)
	}
}

func TestBookHandler_Delete_NotFound(t *testing.T) {
	h := NewBookHandler(&stubBookService{err: domain.ErrBookNotFound})

	c, _ := newJSONContext(http.MethodDelete, "/v1/books/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Delete(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
