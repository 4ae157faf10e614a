package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

func newUserService(repo *stubUserRepo) (*UserService, *stubRecovery, *stubMailer, *stubAudit) {
	recovery := newStubRecovery()
	mailer := &stubMailer{}
	audit := &stubAudit{}
	svc := NewUserService(
		repo,
		NewPasswordHasher(bcrypt.MinCost),
		recovery,
		mailer,
		audit,
		zerolog.Nop(),
	)
	return svc, recovery, mailer, audit
}

func seedUser(t *testing.T, repo *stubUserRepo, email string, roles ...domain.Role) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hash",
		Roles:        roles,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return u
}

func TestUserService_Create_AdminAssignsOperator(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	admin := seedUser(t, repo, "admin@example.com", domain.RoleAdmin)

	created, err := svc.Create(context.Background(), admin, ports.RegisterInput{
		Name: "op", Email: "op@example.com",
		Password: "pass123", ConfirmPassword: "pass123",
		Roles: []domain.Role{domain.RoleOperator},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !domain.RolesEqual(created.Roles, []domain.Role{domain.RoleOperator}) {
		t.Fatalf("unexpected roles: %v", created.Roles)
	}
}

func TestUserService_Create_AdminCannotMintAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	admin := seedUser(t, repo, "admin@example.com", domain.RoleAdmin)

	_, err := svc.Create(context.Background(), admin, ports.RegisterInput{
		Name: "peer", Email: "peer@example.com",
		Password: "pass123", ConfirmPassword: "pass123",
		Roles: []domain.Role{domain.RoleAdmin},
	})
	if !errors.Is(err, domain.ErrForbiddenRoleAssignment) {
		t.Fatalf("expected ErrForbiddenRoleAssignment, got %v", err)
	}
}

func TestUserService_Update_AdminAdjustsUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, audit := newUserService(repo)
	admin := seedUser(t, repo, "admin@example.com", domain.RoleAdmin)
	target := seedUser(t, repo, "user@example.com", domain.RoleUser)

	updated, err := svc.Update(context.Background(), admin, target.ID, ports.UpdateUserInput{
		Roles: []domain.Role{domain.RoleOperator},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !domain.RolesEqual(updated.Roles, []domain.Role{domain.RoleOperator}) {
		t.Fatalf("role not applied: %v", updated.Roles)
	}
	if got := audit.actions(); len(got) != 1 || got[0] != "user.update" {
		t.Fatalf("expected one user.update audit entry, got %v", got)
	}
}

func TestUserService_Update_AdminCannotTouchAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	admin := seedUser(t, repo, "admin@example.com", domain.RoleAdmin)
	peer := seedUser(t, repo, "peer@example.com", domain.RoleAdmin)

	_, err := svc.Update(context.Background(), admin, peer.ID, ports.UpdateUserInput{Name: "renamed"})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("expected ErrForbiddenOperation, got %v", err)
	}
}

func TestUserService_Update_SelfWithoutRoleChange(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	user := seedUser(t, repo, "user@example.com", domain.RoleUser)

	updated, err := svc.Update(context.Background(), user, user.ID, ports.UpdateUserInput{
		Name:            "renamed",
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("name not applied: %q", updated.Name)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass1")); err != nil {
		t.Fatalf("password not rehashed: %v", err)
	}
}

func TestUserService_Update_SelfRoleEscalationDenied(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	user := seedUser(t, repo, "user@example.com", domain.RoleUser)

	_, err := svc.Update(context.Background(), user, user.ID, ports.UpdateUserInput{
		Roles: []domain.Role{domain.RoleAdmin},
	})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("expected ErrForbiddenOperation, got %v", err)
	}
}

func TestUserService_Update_PasswordMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	user := seedUser(t, repo, "user@example.com", domain.RoleUser)

	_, err := svc.Update(context.Background(), user, user.ID, ports.UpdateUserInput{
		Password:        "one",
		ConfirmPassword: "two",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)
	admin := seedUser(t, repo, "admin@example.com", domain.RoleAdmin)
	operator := seedUser(t, repo, "op@example.com", domain.RoleOperator)
	peer := seedUser(t, repo, "peer@example.com", domain.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, operator.ID); err != nil {
		t.Fatalf("admin deleting operator: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), operator.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatal("operator still present after delete")
	}

	err := svc.Delete(context.Background(), admin, peer.ID)
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin deleting admin: expected ErrForbiddenOperation, got %v", err)
	}
}

func TestUserService_RecoverPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, mailer, _ := newUserService(repo)
	user := seedUser(t, repo, "user@example.com", domain.RoleUser)

	if err := svc.RecoverPassword(context.Background(), "User@Example.com"); err != nil {
		t.Fatalf("recover: %v", err)
	}

	if len(mailer.emails) != 1 || mailer.emails[0] != "user@example.com" {
		t.Fatalf("expected one recovery email, got %v", mailer.emails)
	}

	// The stored hash must now match the generated password.
	stored, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(mailer.passwords[0])); err != nil {
		t.Fatalf("recovered password does not match stored hash: %v", err)
	}

	// A second request inside the window is coalesced: no new email.
	if err := svc.RecoverPassword(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("second recover: %v", err)
	}
	if len(mailer.emails) != 1 {
		t.Fatalf("expected coalesced recovery, got %d emails", len(mailer.emails))
	}
}

func TestUserService_RecoverPassword_UnknownAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _, _ := newUserService(repo)

	err := svc.RecoverPassword(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRandomPassword(t *testing.T) {
	a, err := randomPassword(12)
	if err != nil {
		t.Fatalf("randomPassword: %v", err)
	}
	b, err := randomPassword(12)
	if err != nil {
		t.Fatalf("randomPassword: %v", err)
	}
	if len(a) != 12 || len(b) != 12 {
		t.Fatalf("unexpected lengths: %d, %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two generated passwords should not collide")
	}
}
