package ports

import (
	"context"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Roles are
// optional; an empty set defaults to USER.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Roles           []domain.Role
}

// AuthService implements the register / login / session-check flows.
type AuthService interface {
	// Register creates an account after the creation policy has approved the
	// requested roles for the acting user (nil for self-registration).
	Register(ctx context.Context, acting *domain.User, in RegisterInput) (*domain.User, string, error)
	// Login exchanges credentials for a signed token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// CheckStatus re-issues a token for an already-authenticated user.
	CheckStatus(ctx context.Context, user *domain.User) (string, error)
}
