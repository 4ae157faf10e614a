package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/core/domain"
)

type stubAuditRepo struct {
	entries []*domain.AuditEntry
	lastReq struct {
		limit  int64
		offset int64
	}
}

func (r *stubAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) FindAll(_ context.Context, limit, offset int64) ([]*domain.AuditEntry, error) {
	r.lastReq.limit = limit
	r.lastReq.offset = offset
	return r.entries, nil
}

func (r *stubAuditRepo) FindByID(_ context.Context, id string) (*domain.AuditEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrAuditEntryNotFound
}

func TestAuditHandler_List(t *testing.T) {
	e := echo.New()
	repo := &stubAuditRepo{entries: []*domain.AuditEntry{
		{ID: "e1", ActorID: "a1", Action: "user.create", TargetID: "u1"},
		{ID: "e2", ActorID: "a1", Action: "user.delete", TargetID: "u2"},
	}}
	h := NewAuditHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "user.create") || !strings.Contains(rec.Body.String(), "user.delete") {
		t.Fatalf("entries missing from response: %s", rec.Body.String())
	}
	if repo.lastReq.limit != auditPageLimit {
		t.Fatalf("default page limit not applied: %d", repo.lastReq.limit)
	}
}

func TestAuditHandler_List_Pagination(t *testing.T) {
	e := echo.New()
	repo := &stubAuditRepo{}
	h := NewAuditHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastReq.limit != 5 || repo.lastReq.offset != 10 {
		t.Fatalf("pagination not forwarded: %+v", repo.lastReq)
	}
}

func TestAuditHandler_Get(t *testing.T) {
	e := echo.New()
	repo := &stubAuditRepo{entries: []*domain.AuditEntry{
		{ID: "e1", ActorID: "a1", Action: "user.update", TargetID: "u1", CorrelationID: "req-7"},
	}}
	h := NewAuditHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/e1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "req-7") {
		t.Fatalf("correlation id missing from entry: %s", rec.Body.String())
	}
}

func TestAuditHandler_Get_Unknown(t *testing.T) {
	e := echo.New()
	h := NewAuditHandler(&stubAuditRepo{})

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Get(c)
	if !errors.Is(err, domain.ErrAuditEntryNotFound) {
		t.Fatalf("expected ErrAuditEntryNotFound, got %v", err)
	}
}
