package ports

import (
	"context"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// UserRepository defines the persistence surface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	FindAllActive(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
