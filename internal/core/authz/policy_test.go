package authz

import (
	"errors"
	"testing"

	"github.com/recordops/ledger-api/internal/core/domain"
)

func userWith(id string, roles ...domain.Role) *domain.User {
	return &domain.User{ID: id, Roles: roles, IsActive: true}
}

func TestCanCreate_SelfRegistration(t *testing.T) {
	if err := CanCreate(nil, []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("self-registration as USER should be allowed: %v", err)
	}

	for _, roles := range [][]domain.Role{
		{domain.RoleAdmin},
		{domain.RoleSuperAdmin},
		{domain.RoleOperator},
		{domain.RoleUser, domain.RoleAdmin},
	} {
		err := CanCreate(nil, roles)
		if !errors.Is(err, domain.ErrForbiddenRoleAssignment) {
			t.Fatalf("self-registration with roles %v: expected ErrForbiddenRoleAssignment, got %v", roles, err)
		}
	}
}

func TestCanCreate_Superadmin(t *testing.T) {
	actor := userWith("sa1", domain.RoleSuperAdmin)
	for _, roles := range [][]domain.Role{
		{domain.RoleUser},
		{domain.RoleOperator},
		{domain.RoleAdmin},
		{domain.RoleSuperAdmin},
	} {
		if err := CanCreate(actor, roles); err != nil {
			t.Fatalf("superadmin creating %v: %v", roles, err)
		}
	}
}

func TestCanCreate_Admin(t *testing.T) {
	actor := userWith("a1", domain.RoleAdmin)

	if err := CanCreate(actor, []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("admin creating USER: %v", err)
	}
	if err := CanCreate(actor, []domain.Role{domain.RoleOperator}); err != nil {
		t.Fatalf("admin creating OPERATOR: %v", err)
	}

	for _, roles := range [][]domain.Role{
		{domain.RoleAdmin},
		{domain.RoleSuperAdmin},
		{domain.RoleUser, domain.RoleOperator}, // must be exactly one role
	} {
		err := CanCreate(actor, roles)
		if !errors.Is(err, domain.ErrForbiddenRoleAssignment) {
			t.Fatalf("admin creating %v: expected ErrForbiddenRoleAssignment, got %v", roles, err)
		}
	}
}

func TestCanCreate_OperatorAndUserActors(t *testing.T) {
	for _, actor := range []*domain.User{
		userWith("o1", domain.RoleOperator),
		userWith("u1", domain.RoleUser),
	} {
		err := CanCreate(actor, []domain.Role{domain.RoleUser})
		if !errors.Is(err, domain.ErrForbiddenRoleAssignment) {
			t.Fatalf("actor %v creating USER: expected deny, got %v", actor.Roles, err)
		}
	}
}

func TestCanEdit_NilActorAlwaysAllowed(t *testing.T) {
	target := userWith("u1", domain.RoleUser)
	if err := CanEdit(nil, target, nil); err != nil {
		t.Fatalf("recovery path should be allowed: %v", err)
	}
	if err := CanEdit(nil, target, []domain.Role{domain.RoleAdmin}); err != nil {
		t.Fatalf("recovery path should be allowed regardless of roles: %v", err)
	}
}

func TestCanEdit_SuperadminAlwaysAllowed(t *testing.T) {
	actor := userWith("sa1", domain.RoleSuperAdmin)
	targets := []*domain.User{
		userWith("u1", domain.RoleUser),
		userWith("a1", domain.RoleAdmin),
		userWith("sa2", domain.RoleSuperAdmin),
	}
	for _, target := range targets {
		for _, requested := range [][]domain.Role{nil, {domain.RoleUser}, {domain.RoleSuperAdmin}} {
			if err := CanEdit(actor, target, requested); err != nil {
				t.Fatalf("superadmin editing %v to %v: %v", target.Roles, requested, err)
			}
		}
	}
}

func TestCanEdit_AdminSelf(t *testing.T) {
	actor := userWith("a1", domain.RoleAdmin)

	if err := CanEdit(actor, actor, []domain.Role{domain.RoleAdmin}); err != nil {
		t.Fatalf("admin self-edit without role change: %v", err)
	}

	err := CanEdit(actor, actor, []domain.Role{domain.RoleSuperAdmin})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin self-promotion: expected ErrForbiddenOperation, got %v", err)
	}
}

func TestCanEdit_AdminOverOperatorAndUser(t *testing.T) {
	actor := userWith("a1", domain.RoleAdmin)
	operator := userWith("o1", domain.RoleOperator)
	user := userWith("u1", domain.RoleUser)

	// Admin may reassign OPERATOR/USER accounts between those two roles.
	if err := CanEdit(actor, operator, []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("admin demoting operator to user: %v", err)
	}
	if err := CanEdit(actor, user, []domain.Role{domain.RoleOperator}); err != nil {
		t.Fatalf("admin promoting user to operator: %v", err)
	}
	if err := CanEdit(actor, user, []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("admin editing user without role change: %v", err)
	}

	// Never up to ADMIN or beyond, even bundled with an allowed role.
	for _, requested := range [][]domain.Role{
		{domain.RoleAdmin},
		{domain.RoleSuperAdmin},
		{domain.RoleUser, domain.RoleAdmin},
	} {
		err := CanEdit(actor, user, requested)
		if !errors.Is(err, domain.ErrForbiddenOperation) {
			t.Fatalf("admin granting %v: expected deny, got %v", requested, err)
		}
	}
}

func TestCanEdit_AdminCannotTouchPeersOrAbove(t *testing.T) {
	actor := userWith("a1", domain.RoleAdmin)
	otherAdmin := userWith("a2", domain.RoleAdmin)
	superadmin := userWith("sa1", domain.RoleSuperAdmin)

	err := CanEdit(actor, otherAdmin, []domain.Role{domain.RoleUser})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin demoting another admin: expected deny, got %v", err)
	}
	err = CanEdit(actor, otherAdmin, nil)
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin editing another admin: expected deny, got %v", err)
	}
	err = CanEdit(actor, superadmin, []domain.Role{domain.RoleUser})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin demoting superadmin: expected deny, got %v", err)
	}
}

func TestCanEdit_SelfWithoutRoleChange(t *testing.T) {
	for _, actor := range []*domain.User{
		userWith("u1", domain.RoleUser),
		userWith("o1", domain.RoleOperator),
	} {
		if err := CanEdit(actor, actor, actor.Roles); err != nil {
			t.Fatalf("%v self-edit without role change: %v", actor.Roles, err)
		}

		err := CanEdit(actor, actor, []domain.Role{domain.RoleAdmin})
		if !errors.Is(err, domain.ErrForbiddenOperation) {
			t.Fatalf("%v self-promotion: expected deny, got %v", actor.Roles, err)
		}
	}
}

func TestCanEdit_OperatorCannotTouchOthers(t *testing.T) {
	actor := userWith("o1", domain.RoleOperator)
	target := userWith("u1", domain.RoleUser)

	for _, requested := range [][]domain.Role{nil, {domain.RoleUser}, {domain.RoleOperator}} {
		err := CanEdit(actor, target, requested)
		if !errors.Is(err, domain.ErrForbiddenOperation) {
			t.Fatalf("operator editing another user (requested %v): expected deny, got %v", requested, err)
		}
	}
}

// Omitted roles are compared as "unchanged": against the target's current
// roles, not a USER default. Both directions of the historical ambiguity are
// pinned here.
func TestCanEdit_OmittedRolesMeansUnchanged(t *testing.T) {
	operator := userWith("o1", domain.RoleOperator)

	// Self-edit with omitted roles: compared against own current roles, so
	// the operator may edit itself. Under a default-to-USER reading this
	// would be a role change and a deny.
	if err := CanEdit(operator, operator, nil); err != nil {
		t.Fatalf("operator self-edit with omitted roles: %v", err)
	}

	// The explicit-USER request is a genuine role change and is denied.
	err := CanEdit(operator, operator, []domain.Role{domain.RoleUser})
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("operator self-demotion: expected deny, got %v", err)
	}
}

func TestCanDelete_MirrorsRolePreservingEdit(t *testing.T) {
	admin := userWith("a1", domain.RoleAdmin)
	operator := userWith("o1", domain.RoleOperator)
	otherAdmin := userWith("a2", domain.RoleAdmin)
	user := userWith("u1", domain.RoleUser)

	if err := CanDelete(admin, operator); err != nil {
		t.Fatalf("admin deleting operator: %v", err)
	}
	if err := CanDelete(admin, user); err != nil {
		t.Fatalf("admin deleting user: %v", err)
	}
	if err := CanDelete(userWith("sa1", domain.RoleSuperAdmin), otherAdmin); err != nil {
		t.Fatalf("superadmin deleting admin: %v", err)
	}
	if err := CanDelete(user, user); err != nil {
		t.Fatalf("user deleting itself: %v", err)
	}

	err := CanDelete(admin, otherAdmin)
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("admin deleting admin: expected deny, got %v", err)
	}
	err = CanDelete(user, operator)
	if !errors.Is(err, domain.ErrForbiddenOperation) {
		t.Fatalf("user deleting operator: expected deny, got %v", err)
	}
}

func TestRolesEqual_IgnoresOrder(t *testing.T) {
	a := []domain.Role{domain.RoleUser, domain.RoleOperator}
	b := []domain.Role{domain.RoleOperator, domain.RoleUser}
	if !domain.RolesEqual(a, b) {
		t.Fatal("role sets differing only in order must compare equal")
	}
	if domain.RolesEqual(a, []domain.Role{domain.RoleUser}) {
		t.Fatal("sets of different cardinality must not compare equal")
	}
}
