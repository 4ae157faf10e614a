package domain

import "time"

// User models an authenticated actor in the system. The identity core never
// mutates a stored user directly; it only decides whether a requested
// mutation is allowed and whether a token should be honoured.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role. Safe on a nil user.
func (u *User) HasRole(r Role) bool {
	if u == nil {
		return false
	}
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}
