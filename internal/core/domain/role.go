package domain

import "fmt"

// Role is one of the fixed four-level hierarchy:
// SUPERADMIN dominates everything; ADMIN dominates OPERATOR and USER;
// OPERATOR and USER are self-scoped only. The ordering is a policy constant,
// not runtime configuration.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleOperator   Role = "OPERATOR"
	RoleUser       Role = "USER"
)

// AllRoles lists every valid role, dominance first.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleOperator, RoleUser}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	for _, v := range AllRoles {
		if r == v {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrBadRequest, s)
}

// ParseRoles validates a set of raw role strings. An empty input is returned
// as nil; callers decide what "no roles requested" means.
func ParseRoles(raw []string) ([]Role, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// RolesEqual compares two role sets as unordered collections: same elements,
// same cardinality, ordering ignored.
func RolesEqual(a, b []Role) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[Role]int, len(a))
	for _, r := range a {
		seen[r]++
	}
	for _, r := range b {
		seen[r]--
		if seen[r] < 0 {
			return false
		}
	}
	return true
}

// RolesInclude reports whether the set contains the given role.
func RolesInclude(set []Role, r Role) bool {
	for _, have := range set {
		if have == r {
			return true
		}
	}
	return false
}

// RolesIntersect reports whether the two sets share at least one role.
func RolesIntersect(a, b []Role) bool {
	for _, r := range a {
		if RolesInclude(b, r) {
			return true
		}
	}
	return false
}

// RoleStrings converts a role set to its raw string form, mostly for error
// payloads and log fields.
func RoleStrings(set []Role) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = string(r)
	}
	return out
}
