package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/recordops/ledger-api/internal/core/domain"
)

const defaultTokenTTL = 8 * time.Hour

// TokenService signs and verifies bearer tokens. Claims carry only the
// subject id: roles and the active flag are re-resolved from the user store
// on every request, so a role change or deactivation takes effect on the next
// request without revocation machinery. The secret is immutable process
// configuration; rotating it invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. A non-positive ttl falls back to
// the 8 hour default.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given subject with the configured validity
// window.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its subject. Failures map to
// domain.ErrTokenExpired for a correctly signed but stale token and
// domain.ErrTokenInvalid for everything else (bad signature, wrong algorithm,
// malformed envelope, empty subject).
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
