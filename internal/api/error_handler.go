package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs auth/authz denials at a lower severity than unexpected failures.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Secrets (passwords, tokens) never reach this point inside an error message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Echo's own errors (guard rejections, bind failures, 404 from the
		// router). Structured messages pass through untouched so the role
		// guard can report the required role set.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				log.Error().Ctx(c.Request().Context()).Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("unhandled error")
			}
			if msg, ok := he.Message.(string); ok {
				_ = c.JSON(he.Code, errorResponse{Error: msg})
			} else {
				_ = c.JSON(he.Code, he.Message)
			}
			return
		}

		code := resolveCode(err)
		if code == http.StatusInternalServerError {
			// Unexpected error: log the real cause, return a generic message.
			log.Error().Ctx(c.Request().Context()).Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
			_ = c.JSON(code, errorResponse{Error: "internal server error"})
			return
		}

		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			log.Warn().Ctx(c.Request().Context()).Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request denied")
		}
		_ = c.JSON(code, errorResponse{Error: err.Error()})
	}
}

// resolveCode maps the domain error taxonomy to HTTP status codes.
func resolveCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrAccountDisabled),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole),
		errors.Is(err, domain.ErrForbiddenOperation),
		errors.Is(err, domain.ErrForbiddenRoleAssignment):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrAuditEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
