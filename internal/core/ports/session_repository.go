package ports

import (
	"context"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// SessionRepository persists voter sessions, the single source of truth for
// "has this identity already voted".
type SessionRepository interface {
	Create(ctx context.Context, session *domain.VoterSession) error
	FindByID(ctx context.Context, sessionID string) (*domain.VoterSession, error)

	// MarkVoted sets has_voted=true on the session. Must be called only
	// after the corresponding ballot is durably committed. Returns
	// domain.ErrSessionNotFound when the session does not exist.
	MarkVoted(ctx context.Context, sessionID string) error

	// MarkVotedByIdentity sets has_voted=true on every session of the
	// identity. Used by the reconciler.
	MarkVotedByIdentity(ctx context.Context, identityID string) error

	// HasVoted reports whether any session of the identity has voted.
	HasVoted(ctx context.Context, identityID string) (bool, error)

	// ListUnvoted returns all sessions with has_voted=false, for the
	// reconciliation scan.
	ListUnvoted(ctx context.Context) ([]domain.VoterSession, error)
}
