package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const recoveryTTL = 15 * time.Minute

// RecoveryStore tracks pending password recoveries in Redis so repeated
// requests for the same account inside the window are coalesced.
// Key format: recovery:<user_id>
type RecoveryStore struct {
	client *redis.Client
}

// NewRecoveryStore creates a RecoveryStore wrapping the given Redis client.
func NewRecoveryStore(client *redis.Client) *RecoveryStore {
	return &RecoveryStore{client: client}
}

// Begin marks a recovery as in flight. Returns false when one is already
// pending for this user (the marker expires after recoveryTTL).
func (s *RecoveryStore) Begin(ctx context.Context, userID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(userID), "1", recoveryTTL).Result()
	if err != nil {
		return false, fmt.Errorf("recovery begin: %w", err)
	}
	return ok, nil
}

// Clear removes the pending marker, typically after a successful login.
func (s *RecoveryStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("recovery clear: %w", err)
	}
	return nil
}

func (s *RecoveryStore) key(userID string) string {
	return fmt.Sprintf("recovery:%s", userID)
}
