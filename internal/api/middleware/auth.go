package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

const identityKey = "identity"

// IdentityFrom returns the authenticated identity established by Identity,
// if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// Identity runs once per request and establishes the authenticated identity
// for the rest of the pipeline:
//
//   - no Authorization header, or a non-bearer scheme: continue anonymous.
//     Route-level policy (RequireAuth, RBAC) decides whether that is enough.
//   - bearer token that fails verification: continue anonymous. Invalid and
//     absent tokens are treated the same; there is no separate
//     "unauthenticated" authority.
//   - verified token whose subject does not resolve to a user: reject the
//     request. A valid signature naming a nonexistent user means the store
//     and the token stream have diverged, not that credentials are missing.
//
// audit may be nil.
func Identity(tokens ports.TokenService, users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			token := strings.TrimSpace(parts[1])

			if !tokens.Verify(token) {
				metrics.TokensRejectedTotal.WithLabelValues("invalid").Inc()
				record(audit, domain.EventTokenRejected, "", "signature or expiry check failed")
				return next(c)
			}

			subject, err := tokens.Subject(token)
			if err != nil {
				metrics.TokensRejectedTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokensRejectedTotal.WithLabelValues("unknown_subject").Inc()
					record(audit, domain.EventIdentityViolation, "", "verified token subject "+subject+" not found")
					log.Error().
						Str("subject", subject).
						Str("path", c.Path()).
						Msg("verified token names a nonexistent user")
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
				}
				return err
			}

			c.Set(identityKey, domain.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
			})
			return next(c)
		}
	}
}

// RequireAuth rejects requests that reach it without an established identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

func record(audit ports.AuditSink, typ domain.AuthEventType, username, detail string) {
	if audit == nil {
		return
	}
	audit.Enqueue(ports.AuthEventInput{
		Type:      string(typ),
		Username:  username,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
