// Package metrics defines and registers all custom Prometheus metrics for the
// ledger API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts credential exchanges.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the authentication guard.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token",
//     "unknown_subject", "account_disabled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected during authentication.",
	},
	[]string{"reason"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// PolicyDecisionsTotal counts fine-grained policy evaluations.
// Labels:
//   - operation: "create", "edit", "delete"
//   - decision: "allow" or "deny"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of authorization policy decisions.",
	},
	[]string{"operation", "decision"},
)

// RoleDenialsTotal counts requests rejected by the coarse route-level role
// gate, labelled by route path.
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests rejected by the route role gate.",
	},
	[]string{"path"},
)

// ── Account flows ─────────────────────────────────────────────────────────────

// RecoveryRequestsTotal counts issued password recoveries.
var RecoveryRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_requests_total",
		Help:      "Total number of recovery passwords issued.",
	},
)

// ── Audit pipeline ────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit entries waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)

// AuditWriteErrorsTotal counts audit entries that failed to persist.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries that could not be persisted.",
	},
)
