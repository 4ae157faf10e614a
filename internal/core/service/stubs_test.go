package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/recordops/ledger-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository shared by the service tests.
type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.seq++
	copy.ID = "user-" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context, limit, offset int64) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindAllActive(_ context.Context, limit, offset int64) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubRecovery records Begin/Clear calls.
type stubRecovery struct {
	mu      sync.Mutex
	pending map[string]bool
	cleared []string
}

func newStubRecovery() *stubRecovery {
	return &stubRecovery{pending: make(map[string]bool)}
}

func (s *stubRecovery) Begin(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[userID] {
		return false, nil
	}
	s.pending[userID] = true
	return true, nil
}

func (s *stubRecovery) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
	s.cleared = append(s.cleared, userID)
	return nil
}

// stubMailer captures recovery emails.
type stubMailer struct {
	mu        sync.Mutex
	emails    []string
	passwords []string
}

func (m *stubMailer) SendRecoveryPassword(_ context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
	m.passwords = append(m.passwords, password)
	return nil
}

// stubAudit captures recorded entries synchronously.
type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(entry domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}
