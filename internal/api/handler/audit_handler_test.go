package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

type stubAuditRepo struct {
	events    []*domain.AuthEvent
	lastPage  int
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, page, limit int) ([]*domain.AuthEvent, int64, error) {
	r.lastPage = page
	r.lastLimit = limit
	return r.events, int64(len(r.events)), nil
}

func TestAuditHandler_List(t *testing.T) {
	repo := &stubAuditRepo{events: []*domain.AuthEvent{
		{ID: "e1", Type: domain.EventLoginFailed, Username: "frank", Timestamp: time.Now().UTC()},
	}}
	h := NewAuditHandler(repo)

	c, rec := newJSONContext(http.MethodGet, "/v1/auth/events", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastPage != 1 || repo.lastLimit != defaultAuditPageLimit {
		t.Fatalf("expected defaults page=1 limit=%d, got page=%d limit=%d", defaultAuditPageLimit, repo.lastPage, repo.lastLimit)
	}

	var resp listAuthEventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Type != string(domain.EventLoginFailed) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuditHandler_List_LimitCap(t *testing.T) {
	repo := &stubAuditRepo{}
	h := NewAuditHandler(repo)

	c, _ := newJSONContext(http.MethodGet, "/v1/auth/events?limit=9999", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastLimit != maxAuditPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxAuditPageLimit, repo.lastLimit)
	}
}
