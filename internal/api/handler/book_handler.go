package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

type createBookRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Author      string  `json:"author" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// updateBookRequest is a partial update: absent fields are left unchanged.
type updateBookRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Author      *string  `json:"author" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// Create adds a book to the catalog.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Name:        req.Name,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Get returns a single book by id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// List returns a page of books, optionally filtered and sorted.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Contains-match on name or author"
// @Param        sort    query     string  false  "price_asc or price_desc"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listBooksResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListBooks(c.Request().Context(), ports.ListBooksInput{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Update applies a partial update to a book.
//
// @Summary      Update a book by id
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "Fields to change"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.UpdateBook(c.Request().Context(), c.Param("id"), ports.UpdateBookInput{
		Name:        req.Name,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Delete removes a book from the catalog.
//
// @Summary      Delete a book by id
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
