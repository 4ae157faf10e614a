package ports

import (
	"context"
	"time"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// TransactionFilter narrows transaction listings. A zero value lists
// everything the caller is allowed to see.
type TransactionFilter struct {
	UserID   string
	Category domain.Category
	From     time.Time
	To       time.Time
	Limit    int64
	Offset   int64
}

// TransactionRepository defines the persistence surface for ledger records.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	Find(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	Update(ctx context.Context, id string, in UpdateTransactionInput) (*domain.Transaction, error)
	Deactivate(ctx context.Context, id string) error
}

// CreateTransactionInput carries a new ledger record.
type CreateTransactionInput struct {
	Description    string
	Date           time.Time
	Amount         float64
	Category       domain.Category
	MeansOfPayment domain.MeansOfPayment
	Observation    string
	Area           domain.Area
}

// UpdateTransactionInput carries a partial mutation of a ledger record. Nil
// fields are left untouched.
type UpdateTransactionInput struct {
	Description    *string
	Date           *time.Time
	Amount         *float64
	Category       *domain.Category
	MeansOfPayment *domain.MeansOfPayment
	Observation    *string
	Area           *domain.Area
}

// TransactionService scopes record access by ownership and role: USER and
// OPERATOR see their own records, ADMIN and SUPERADMIN see anyone's.
type TransactionService interface {
	Create(ctx context.Context, acting *domain.User, in CreateTransactionInput) (*domain.Transaction, error)
	Find(ctx context.Context, acting *domain.User, filter TransactionFilter) ([]*domain.Transaction, error)
	FindByID(ctx context.Context, acting *domain.User, id string) (*domain.Transaction, error)
	Update(ctx context.Context, acting *domain.User, id string, in UpdateTransactionInput) (*domain.Transaction, error)
	Deactivate(ctx context.Context, acting *domain.User, id string) error
}
