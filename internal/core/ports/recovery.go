package ports

import "context"

// RecoveryStore tracks in-flight password recoveries so repeated requests for
// the same account within the window are coalesced instead of generating a
// fresh password each time.
type RecoveryStore interface {
	// Begin marks a recovery as in flight for the user. It returns false when
	// one is already pending.
	Begin(ctx context.Context, userID string) (bool, error)
	// Clear removes the pending marker, typically after a successful login.
	Clear(ctx context.Context, userID string) error
}
