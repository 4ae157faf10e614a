package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/api/metrics"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
	"github.com/recordops/ledger-api/internal/core/service"
)

// userContextKey carries the authenticated user on the request's
// context.Context so downstream code that only sees a context (services,
// goroutines) can still reach the identity.
type userContextKey struct{}

// echoUserKey mirrors the same user on the echo context for handlers.
const echoUserKey = "auth_user"

// WithUser attaches the authenticated user to a context.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext retrieves the authenticated user, or nil when the request
// did not pass the authentication guard.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey{}).(*domain.User)
	return u
}

// UserFromEcho retrieves the authenticated user from an echo context.
func UserFromEcho(c echo.Context) *domain.User {
	u, _ := c.Get(echoUserKey).(*domain.User)
	return u
}

// Auth is the authentication guard: it extracts the bearer token, verifies
// it, re-resolves the subject against the user store (tokens carry no roles,
// so role changes and deactivation bite on the very next request), rejects
// disabled accounts, and attaches the live user to the request before any
// downstream check runs.
func Auth(tokens *service.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header").
					SetInternal(domain.ErrUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header").
					SetInternal(domain.ErrUnauthenticated)
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthFailuresTotal.WithLabelValues("expired_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired").SetInternal(err)
				}
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if errors.Is(err, domain.ErrUserNotFound) {
				// Token is valid but the subject is gone (deleted account).
				metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").
					SetInternal(domain.ErrUnauthenticated)
			}
			if err != nil {
				// A store failure is not an authentication outcome. Let the
				// error handler report it as a server error.
				return err
			}
			if !user.IsActive {
				metrics.AuthFailuresTotal.WithLabelValues("account_disabled").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "account disabled").
					SetInternal(domain.ErrAccountDisabled)
			}

			c.Set(echoUserKey, user)
			req := c.Request()
			c.SetRequest(req.WithContext(WithUser(req.Context(), user)))

			return next(c)
		}
	}
}
