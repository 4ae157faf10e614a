package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/api/metrics"
	"github.com/recordops/ledger-api/internal/core/domain"
)

// RequireRoles is the coarse route-level role gate. The required set is an
// explicit per-route value, evaluated strictly after the Auth middleware.
// An empty set allows any authenticated user. On denial the response names
// the roles the route requires, never the caller's own.
func RequireRoles(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(required) == 0 {
				return next(c)
			}

			user := UserFromEcho(c)
			if user == nil {
				// Auth middleware did not run; fail closed.
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required").
					SetInternal(domain.ErrUnauthenticated)
			}

			if domain.RolesIntersect(user.Roles, required) {
				return next(c)
			}

			metrics.RoleDenialsTotal.WithLabelValues(c.Path()).Inc()
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{
				"error":          "insufficient role",
				"required_roles": domain.RoleStrings(required),
			}).SetInternal(domain.ErrInsufficientRole)
		}
	}
}
