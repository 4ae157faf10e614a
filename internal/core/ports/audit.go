package ports

import (
	"context"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// AuditRepository persists audit entries and serves the admin read surface.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	FindAll(ctx context.Context, limit, offset int64) ([]*domain.AuditEntry, error)
	FindByID(ctx context.Context, id string) (*domain.AuditEntry, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
