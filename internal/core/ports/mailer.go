package ports

import "context"

// Mailer delivers outbound mail. Actual delivery is an external collaborator;
// the in-repo implementation only logs.
type Mailer interface {
	SendRecoveryPassword(ctx context.Context, email, newPassword string) error
}
