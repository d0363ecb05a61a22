package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// RBAC enforces role-based access control. It expects Identity to have run
// earlier in the chain; a request without an identity is rejected as
// unauthenticated rather than forbidden.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[id.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
