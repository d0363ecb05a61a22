package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting events to the audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. Called from dispatcher workers, off
// the request path.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuthEvent{
		Type:      domain.AuthEventType(in.Type),
		Username:  in.Username,
		Detail:    in.Detail,
		Timestamp: ts,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}

	s.log.Debug().
		Str("type", in.Type).
		Str("username", in.Username).
		Msg("auth event recorded")
	return nil
}
