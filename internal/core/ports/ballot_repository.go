package ports

import (
	"context"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// BallotRepository is the append-only ballot store. Record is the single
// serialization point for one-vote-per-key: the uniqueness check on
// voter_key and the insert must be one atomic operation.
type BallotRepository interface {
	// Record appends the ballot. Returns domain.ErrDuplicateVoter when a
	// ballot for the same voter key is already committed.
	Record(ctx context.Context, ballot *domain.Ballot) error

	// All returns every committed ballot. Each call is a fresh read, not a
	// live cursor.
	All(ctx context.Context) ([]domain.Ballot, error)

	// ContainsVoter reports whether a ballot exists for the given voter key.
	ContainsVoter(ctx context.Context, voterKey string) (bool, error)

	// Count returns the number of committed ballots.
	Count(ctx context.Context) (int64, error)
}
