// Package correlation associates one opaque identifier with the lifetime of
// one inbound request. The id travels on the request's context.Context, so it
// follows the asynchronous call graph for free: goroutines handed the request
// context see the id, concurrent requests never see each other's. Code with
// no request context (startup, background workers) simply reads an empty id
// and substitutes the sentinel.
package correlation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Header is the wire name of the correlation id, accepted on requests and
// always echoed on responses.
const Header = "X-Correlation-Id"

// None is the sentinel logged when no correlation scope is active.
const None = "none"

type ctxKey struct{}

// WithID returns a context carrying the given correlation id. An empty id
// generates a fresh one.
func WithID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewID()
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id of the active scope, or "" and false
// when called outside any scope.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// IDOrNone returns the active correlation id or the None sentinel.
func IDOrNone(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return None
}

// NewID generates a fresh opaque correlation id.
func NewID() string {
	return uuid.NewString()
}

// Hook stamps the correlation id onto every zerolog event carrying a request
// context. Attach it once at logger initialisation and log through
// logger-with-context (zerolog's Ctx / WithContext plumbing); events logged
// without a context are left untouched.
type Hook struct{}

func (Hook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	if id, ok := FromContext(ctx); ok {
		e.Str("correlation_id", id)
	}
}
