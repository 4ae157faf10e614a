package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recordops/ledger-api/internal/api/metrics"
	"github.com/recordops/ledger-api/internal/core/authz"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
	"github.com/recordops/ledger-api/pkg/correlation"
)

const defaultPageLimit = 20

// UserService implements user management on top of the authorization policy.
type UserService struct {
	users    ports.UserRepository
	hasher   *PasswordHasher
	recovery ports.RecoveryStore
	mailer   ports.Mailer
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	hasher *PasswordHasher,
	recovery ports.RecoveryStore,
	mailer ports.Mailer,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		recovery: recovery,
		mailer:   mailer,
		audit:    audit,
		log:      log,
	}
}

// Create is the admin-initiated account creation path. The policy decides
// which role sets the acting user may assign.
func (s *UserService) Create(ctx context.Context, acting *domain.User, in ports.RegisterInput) (*domain.User, error) {
	roles := in.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	if err := authz.CanCreate(acting, roles); err != nil {
		metrics.PolicyDecisionsTotal.WithLabelValues("create", "deny").Inc()
		return nil, err
	}
	metrics.PolicyDecisionsTotal.WithLabelValues("create", "allow").Inc()

	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Roles:        roles,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:       acting.ID,
		Action:        "user.create",
		TargetID:      created.ID,
		CorrelationID: correlation.IDOrNone(ctx),
	})
	s.log.Info().Ctx(ctx).
		Str("actor_id", acting.ID).
		Str("user_id", created.ID).
		Strs("roles", domain.RoleStrings(created.Roles)).
		Msg("user created")

	return created, nil
}

func (s *UserService) FindAll(ctx context.Context, limit, offset int64) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return s.users.FindAll(ctx, limit, offset)
}

func (s *UserService) FindAllActive(ctx context.Context, limit, offset int64) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return s.users.FindAllActive(ctx, limit, offset)
}

// FindByIDOrEmail resolves a user by id when term looks like one, otherwise
// by (normalized) email.
func (s *UserService) FindByIDOrEmail(ctx context.Context, term string) (*domain.User, error) {
	if strings.Contains(term, "@") {
		return s.users.FindByEmail(ctx, NormalizeEmail(term))
	}
	return s.users.FindByID(ctx, term)
}

// Update applies a partial mutation to the target user. acting is nil only on
// the recovery-password path, which the policy allows unconditionally; every
// other caller is checked against the target's current roles and the roles it
// would end up with.
func (s *UserService) Update(ctx context.Context, acting *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if acting != nil {
		if err := authz.CanEdit(acting, target, in.Roles); err != nil {
			metrics.PolicyDecisionsTotal.WithLabelValues("edit", "deny").Inc()
			return nil, err
		}
		metrics.PolicyDecisionsTotal.WithLabelValues("edit", "allow").Inc()
	}

	if in.Password != "" || in.ConfirmPassword != "" {
		if in.Password != in.ConfirmPassword {
			return nil, domain.ErrPasswordMismatch
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	if in.Name != "" {
		target.Name = in.Name
	}
	if in.Email != "" {
		target.Email = NormalizeEmail(in.Email)
	}
	if in.Roles != nil {
		target.Roles = in.Roles
	}
	if in.IsActive != nil {
		target.IsActive = *in.IsActive
	}

	updated, err := s.users.Update(ctx, target)
	if err != nil {
		return nil, err
	}

	actorID := "recovery"
	if acting != nil {
		actorID = acting.ID
	}
	s.audit.Record(domain.AuditEntry{
		ActorID:       actorID,
		Action:        "user.update",
		TargetID:      updated.ID,
		CorrelationID: correlation.IDOrNone(ctx),
	})
	s.log.Info().Ctx(ctx).
		Str("actor_id", actorID).
		Str("user_id", updated.ID).
		Msg("user updated")

	return updated, nil
}

// Delete removes the target account. Authorization reuses the edit policy
// with the target's current roles, so exactly the users who could perform a
// role-preserving edit may delete.
func (s *UserService) Delete(ctx context.Context, acting *domain.User, id string) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.CanDelete(acting, target); err != nil {
		metrics.PolicyDecisionsTotal.WithLabelValues("delete", "deny").Inc()
		return err
	}
	metrics.PolicyDecisionsTotal.WithLabelValues("delete", "allow").Inc()

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:       acting.ID,
		Action:        "user.delete",
		TargetID:      id,
		CorrelationID: correlation.IDOrNone(ctx),
	})
	s.log.Info().Ctx(ctx).
		Str("actor_id", acting.ID).
		Str("user_id", id).
		Msg("user deleted")

	return nil
}

// RecoverPassword resets the account to a random password and hands it to the
// mailer. The flow carries no session: possession of the email is the only
// proof of identity, so the subsequent update runs with a nil acting user.
// Repeated requests inside the recovery window are coalesced.
func (s *UserService) RecoverPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	fresh, err := s.recovery.Begin(ctx, user.ID)
	if err != nil {
		return err
	}
	if !fresh {
		s.log.Info().Ctx(ctx).Str("user_id", user.ID).Msg("recovery already pending")
		return nil
	}

	password, err := randomPassword(12)
	if err != nil {
		return err
	}

	if _, err := s.Update(ctx, nil, user.ID, ports.UpdateUserInput{
		Password:        password,
		ConfirmPassword: password,
	}); err != nil {
		return err
	}

	if err := s.mailer.SendRecoveryPassword(ctx, user.Email, password); err != nil {
		return err
	}

	metrics.RecoveryRequestsTotal.Inc()
	s.log.Info().Ctx(ctx).Str("user_id", user.ID).Msg("recovery password issued")

	return nil
}

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomPassword(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}
