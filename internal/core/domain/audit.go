package domain

import "time"

// AuditEntry records a privileged mutation: who did what to whom. Entries are
// written off the request path and never block the mutation itself.
type AuditEntry struct {
	ID            string    `json:"id"`
	ActorID       string    `json:"actor_id"`
	Action        string    `json:"action"`
	TargetID      string    `json:"target_id,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
