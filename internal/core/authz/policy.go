// Package authz holds the hierarchical authorization rules governing who may
// create, edit or delete user accounts. All decisions are pure functions of
// the acting user, the target user and the requested role change; the package
// holds no state and needs no locking.
package authz

import (
	"fmt"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// CanCreate decides whether acting may create a new account carrying the
// requested role set.
//
// A nil acting user means public self-registration, which is only allowed for
// a plain USER account. With a session, SUPERADMIN may create anything and
// ADMIN may create exactly-USER or exactly-OPERATOR accounts. ADMIN can never
// mint another ADMIN or a SUPERADMIN.
func CanCreate(acting *domain.User, requested []domain.Role) error {
	if acting == nil {
		if exactlyOne(requested, domain.RoleUser) {
			return nil
		}
		return fmt.Errorf("%w: self-registration is limited to role %s",
			domain.ErrForbiddenRoleAssignment, domain.RoleUser)
	}

	if acting.HasRole(domain.RoleSuperAdmin) {
		return nil
	}
	if acting.HasRole(domain.RoleAdmin) &&
		(exactlyOne(requested, domain.RoleUser) || exactlyOne(requested, domain.RoleOperator)) {
		return nil
	}

	return fmt.Errorf("%w: cannot create a user with roles %v",
		domain.ErrForbiddenRoleAssignment, domain.RoleStrings(requested))
}

// CanEdit decides whether acting may apply a mutation to target that would
// leave target with the requested role set.
//
// A nil requested set means the edit does not touch roles; it is compared as
// "unchanged", i.e. against target's current roles. A nil acting user marks
// the recovery-password path, which is pre-validated by possession of the
// account's email and therefore always allowed here.
func CanEdit(acting, target *domain.User, requested []domain.Role) error {
	if acting == nil {
		return nil
	}
	if requested == nil {
		requested = target.Roles
	}

	isSelf := acting.ID == target.ID
	keepsOwnRoles := domain.RolesEqual(requested, acting.Roles)

	// SUPERADMIN edits anyone.
	if acting.HasRole(domain.RoleSuperAdmin) {
		return nil
	}

	// ADMIN edits itself as long as it is not changing its own roles.
	if acting.HasRole(domain.RoleAdmin) && isSelf && keepsOwnRoles {
		return nil
	}

	// ADMIN reassigns OPERATOR and USER accounts between those two roles,
	// never granting ADMIN or above. ADMIN targets fall through to the deny.
	if unprivileged(requested) && acting.HasRole(domain.RoleAdmin) &&
		(target.HasRole(domain.RoleOperator) || target.HasRole(domain.RoleUser)) {
		return nil
	}

	// Anyone edits their own non-privileged fields, but never their own roles.
	if isSelf && keepsOwnRoles {
		return nil
	}

	return fmt.Errorf("%w for user with roles %v",
		domain.ErrForbiddenOperation, domain.RoleStrings(acting.Roles))
}

// CanDelete authorizes a deletion exactly as a role-preserving edit of the
// target would be authorized.
func CanDelete(acting, target *domain.User) error {
	return CanEdit(acting, target, target.Roles)
}

func exactlyOne(set []domain.Role, r domain.Role) bool {
	return len(set) == 1 && set[0] == r
}

// unprivileged reports whether the set is non-empty and drawn entirely from
// {USER, OPERATOR}. A set smuggling ADMIN alongside USER must not count.
func unprivileged(set []domain.Role) bool {
	if len(set) == 0 {
		return false
	}
	for _, r := range set {
		if r != domain.RoleUser && r != domain.RoleOperator {
			return false
		}
	}
	return true
}
