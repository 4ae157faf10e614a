package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/core/ports"
)

const auditPageLimit = 20

// AuditHandler exposes the audit trail to administrators. Entries are
// written asynchronously by the services; this surface is read-only.
type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns audit entries, newest first.
//
// @Summary      List audit entries
// @Tags         audit
// @Produce      json
// @Success      200  {array}  domain.AuditEntry
// @Router       /audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	if limit <= 0 {
		limit = auditPageLimit
	}

	entries, err := h.audit.FindAll(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

// Get returns a single audit entry by id.
//
// @Summary      Get an audit entry
// @Tags         audit
// @Produce      json
// @Param        id   path      string  true  "Audit entry id"
// @Success      200  {object}  domain.AuditEntry
// @Router       /audit-logs/{id} [get]
func (h *AuditHandler) Get(c echo.Context) error {
	entry, err := h.audit.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}
