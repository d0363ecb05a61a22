package ports

import (
	"context"
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// AuthEventInput is the DTO handed to the audit pipeline by the auth core.
type AuthEventInput struct {
	Type      string
	Username  string
	Detail    string
	Timestamp time.Time // zero value means "now"
}

// AuditSink accepts events for asynchronous processing. Enqueue must not
// block request handling beyond a buffered channel send.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}

// AuditService persists a single audit event.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}

// AuditRepository handles audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	// List returns a page of events, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.AuthEvent, int64, error)
}
