package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/api/middleware"
	"github.com/recordops/ledger-api/internal/core/domain"
)

// currentUser extracts the identity attached by the Auth middleware and
// performs a fast-fail check before any service call: a missing user means
// the route was wired without the guard, which must fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromEcho(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication").
			SetInternal(domain.ErrUnauthenticated)
	}
	return user, nil
}
