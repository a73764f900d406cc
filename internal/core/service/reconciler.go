package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/phoenix-council/election-api/internal/api/metrics"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

// Reconciler repairs the one recoverable inconsistency the submission
// pipeline can leave behind: a durably committed ballot whose session
// has_voted update failed. The ballot always wins; the session flag is
// brought forward to match it, never the reverse.
type Reconciler struct {
	sessions ports.SessionRepository
	ballots  ports.BallotRepository
	log      zerolog.Logger
}

func NewReconciler(sessions ports.SessionRepository, ballots ports.BallotRepository, log zerolog.Logger) *Reconciler {
	return &Reconciler{sessions: sessions, ballots: ballots, log: log}
}

// Run performs one reconciliation pass and returns the number of
// identities repaired.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	stale, err := r.sessions.ListUnvoted(ctx)
	if err != nil {
		return 0, fmt.Errorf("reconcile: list sessions: %w", err)
	}

	seen := make(map[string]struct{}, len(stale))
	repaired := 0
	for _, sess := range stale {
		if _, done := seen[sess.IdentityID]; done {
			continue
		}
		seen[sess.IdentityID] = struct{}{}

		has, err := r.ballots.ContainsVoter(ctx, sess.IdentityID)
		if err != nil {
			return repaired, fmt.Errorf("reconcile: check ballot for %s: %w", sess.IdentityID, err)
		}
		if !has {
			continue
		}

		if err := r.sessions.MarkVotedByIdentity(ctx, sess.IdentityID); err != nil {
			return repaired, fmt.Errorf("reconcile: mark %s: %w", sess.IdentityID, err)
		}
		repaired++
		metrics.SessionsReconciledTotal.Inc()
		r.log.Warn().Str("identity_id", sess.IdentityID).Msg("repaired stale session flag")
	}

	if repaired > 0 {
		r.log.Info().Int("repaired", repaired).Msg("reconciliation pass complete")
	}
	return repaired, nil
}

// Start runs reconciliation passes on the given interval until ctx is
// cancelled.
func (r *Reconciler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.Run(ctx); err != nil {
					r.log.Error().Err(err).Msg("reconciliation pass failed")
				}
			}
		}
	}()
}
