// Package mail holds the outbound-mail collaborator. Real delivery lives
// outside this service; the in-repo implementation records the intent in the
// log without ever including the password itself.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendRecoveryPassword(ctx context.Context, email, _ string) error {
	m.log.Info().Ctx(ctx).
		Str("email", email).
		Msg("recovery password email queued")
	return nil
}
