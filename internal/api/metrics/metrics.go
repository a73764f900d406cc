// Package metrics defines and registers all custom Prometheus metrics for
// the election API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "election"

// ---------------------------------------------------------------------------
// Ballot metrics
// ---------------------------------------------------------------------------

// BallotsSubmittedTotal counts ballots that were durably committed.
// Label:
//   - voter_type: "session" (authenticated) or "demo" (synthesized identity)
var BallotsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ballots_submitted_total",
		Help:      "Total number of ballots successfully committed.",
	},
	[]string{"voter_type"},
)

// BallotRejectionsTotal counts rejected submissions.
// Label:
//   - reason: stable reason code (e.g. "already_voted", "invalid_selection_size",
//     "unknown_candidate", "election_closed", "storage_error")
var BallotRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ballot_rejections_total",
		Help:      "Total number of rejected ballot submissions, by reason.",
	},
	[]string{"reason"},
)

// InconsistentCommitsTotal counts ballots that committed while the paired
// session update failed. These require a reconciliation pass.
var InconsistentCommitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inconsistent_commits_total",
		Help:      "Ballots committed without the session has_voted flag landing.",
	},
)

// SessionsReconciledTotal counts stale session flags repaired by the
// reconciler.
var SessionsReconciledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reconciled_total",
		Help:      "Total number of stale voter sessions repaired.",
	},
)

// ---------------------------------------------------------------------------
// Token metrics
// ---------------------------------------------------------------------------

// VoterTokensIssuedTotal counts one-time voter tokens issued on request.
var VoterTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "voter_tokens_issued_total",
		Help:      "Total number of one-time voter tokens issued.",
	},
)

// ---------------------------------------------------------------------------
// Tally metrics
// ---------------------------------------------------------------------------

// TallyDuration measures how long a full results computation takes.
var TallyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tally_duration_seconds",
		Help:      "Duration of a full ballot tally, read to ranking.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ---------------------------------------------------------------------------
// Audit queue metrics
// ---------------------------------------------------------------------------

// AuditQueueDepth tracks the number of submission events waiting in each
// audit dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of submission events pending per audit worker.",
	},
	[]string{"worker_id"},
)
