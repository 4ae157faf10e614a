package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recordops/ledger-api/internal/api/metrics"
	"github.com/recordops/ledger-api/internal/core/authz"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
	"github.com/recordops/ledger-api/pkg/correlation"
)

// AuthService implements registration, login and session re-validation on top
// of the token service, the password hasher and the creation policy.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenService
	hasher   *PasswordHasher
	recovery ports.RecoveryStore
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens *TokenService,
	hasher *PasswordHasher,
	recovery ports.RecoveryStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		recovery: recovery,
		audit:    audit,
		log:      log,
	}
}

// Register creates an account. acting is nil for public self-registration,
// which the policy restricts to a plain USER account; admin-initiated
// creation is policy-checked against the acting user's roles.
func (s *AuthService) Register(ctx context.Context, acting *domain.User, in ports.RegisterInput) (*domain.User, string, error) {
	roles := in.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	if err := authz.CanCreate(acting, roles); err != nil {
		metrics.PolicyDecisionsTotal.WithLabelValues("create", "deny").Inc()
		return nil, "", err
	}
	metrics.PolicyDecisionsTotal.WithLabelValues("create", "allow").Inc()

	if in.Email == "" || in.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domain.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Roles:        roles,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", err
	}

	actorID := "self-registration"
	if acting != nil {
		actorID = acting.ID
	}
	s.audit.Record(domain.AuditEntry{
		ActorID:       actorID,
		Action:        "user.create",
		TargetID:      created.ID,
		CorrelationID: correlation.IDOrNone(ctx),
	})
	s.log.Info().Ctx(ctx).
		Str("user_id", created.ID).
		Strs("roles", domain.RoleStrings(created.Roles)).
		Msg("user registered")

	return created, token, nil
}

// Login verifies the credential and issues a token. Disabled accounts are
// rejected before the password is even compared, matching the authentication
// guard's behaviour for live sessions.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		// Do not reveal whether the account exists.
		return nil, "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrAccountDisabled
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Ctx(ctx).Str("user_id", user.ID).Msg("login rejected: bad password")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	// A successful login settles any pending password recovery.
	if err := s.recovery.Clear(ctx, user.ID); err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("user_id", user.ID).Msg("clear recovery marker failed")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Ctx(ctx).Str("user_id", user.ID).Msg("login")

	return user, token, nil
}

// CheckStatus re-issues a token for an authenticated user, extending the
// session without a fresh credential exchange.
func (s *AuthService) CheckStatus(_ context.Context, user *domain.User) (string, error) {
	return s.tokens.Issue(user.ID)
}

// NormalizeEmail lower-cases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
