package ports

import (
	"context"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// UpdateUserInput carries a partial user mutation. Nil/empty fields are left
// untouched; a nil Roles slice means "roles unchanged" and is authorized
// against the target's current roles.
type UpdateUserInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Roles           []domain.Role
	IsActive        *bool
}

// UserService implements user management on top of the authorization policy.
// Acting is nil only on the recovery-password path.
type UserService interface {
	Create(ctx context.Context, acting *domain.User, in RegisterInput) (*domain.User, error)
	FindAll(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	FindAllActive(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	FindByIDOrEmail(ctx context.Context, term string) (*domain.User, error)
	Update(ctx context.Context, acting *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, acting *domain.User, id string) error
	RecoverPassword(ctx context.Context, email string) error
}
