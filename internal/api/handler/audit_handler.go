package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

const (
	defaultAuditPageLimit = 50
	maxAuditPageLimit     = 200
)

// AuditHandler exposes the security audit trail to administrators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type authEventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Username  string    `json:"username,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type listAuthEventsResponse struct {
	Items      []authEventResponse `json:"items"`
	Pagination paginationResponse  `json:"pagination"`
}

// List returns a page of audit events, newest first.
//
// @Summary      List security audit events
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "1-based page number"
// @Param        limit  query     int  false  "Page size (max 200)"
// @Success      200    {object}  listAuthEventsResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /v1/auth/events [get]
func (h *AuditHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultAuditPageLimit
	}
	if limit > maxAuditPageLimit {
		limit = maxAuditPageLimit
	}

	events, total, err := h.repo.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	items := make([]authEventResponse, len(events))
	for i, e := range events {
		items[i] = toAuthEventResponse(e)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return c.JSON(http.StatusOK, listAuthEventsResponse{
		Items: items,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

func toAuthEventResponse(e *domain.AuthEvent) authEventResponse {
	return authEventResponse{
		ID:        e.ID,
		Type:      string(e.Type),
		Username:  e.Username,
		Detail:    e.Detail,
		Timestamp: e.Timestamp.UTC(),
	}
}
