package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/pkg/correlation"
)

func TestCorrelation_GeneratesWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := Correlation()(func(c echo.Context) error {
		id, ok := correlation.FromContext(c.Request().Context())
		if !ok || id == "" {
			t.Fatal("no correlation id on request context")
		}
		seen = id
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(correlation.Header); got != seen {
		t.Fatalf("response header %q does not echo the generated id %q", got, seen)
	}
}

func TestCorrelation_ForwardsExistingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlation.Header, "upstream-77")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Correlation()(func(c echo.Context) error {
		if id, _ := correlation.FromContext(c.Request().Context()); id != "upstream-77" {
			t.Fatalf("forwarded id not reused: %q", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(correlation.Header); got != "upstream-77" {
		t.Fatalf("response header %q does not echo the forwarded id", got)
	}
}
