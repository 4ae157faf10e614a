package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/pkg/correlation"
)

// Correlation assigns each inbound request a correlation id: forwarded
// verbatim when the caller supplies X-Correlation-Id, generated otherwise.
// The id lives on the request's context for the full call graph and is always
// echoed on the response. Mounted before everything else so every log line
// emitted while handling the request carries the id.
func Correlation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(correlation.Header)
			if id == "" {
				id = correlation.NewID()
			}

			c.SetRequest(req.WithContext(correlation.WithID(req.Context(), id)))
			c.Response().Header().Set(correlation.Header, id)

			return next(c)
		}
	}
}
