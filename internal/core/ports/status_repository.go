package ports

import (
	"context"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// StatusRepository persists the election open/closed flag. Set must write
// durably before returning success; callers treat any error as "write did
// not land".
type StatusRepository interface {
	Get(ctx context.Context) (domain.ElectionStatus, error)
	Set(ctx context.Context, isOpen bool) error
}

// RosterRepository exposes the read-only candidate reference list. Small
// enough to load per request.
type RosterRepository interface {
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
}
