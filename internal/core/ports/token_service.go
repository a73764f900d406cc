package ports

import (
	"context"
	"time"
)

// TokenStore holds one-time voter tokens. A token is a single-use
// capability, not an identity.
type TokenStore interface {
	// Issue stores the token with the given time-to-live.
	Issue(ctx context.Context, token string, ttl time.Duration) error

	// Consume atomically removes the token and reports whether it existed.
	// A second Consume of the same token returns false.
	Consume(ctx context.Context, token string) (bool, error)
}

// TokenService implements the legacy/demo offline-verification path.
type TokenService interface {
	// Request issues a fresh one-time voter token for the given contact
	// details. Fails with domain.ErrElectionClosed when voting is closed.
	Request(ctx context.Context, email, phoneLast4 string) (string, error)

	// Verify consumes the token exactly once. Fails with
	// domain.ErrInvalidToken when unknown or already consumed, and with
	// domain.ErrAlreadyVoted when the token was already used as a voter key.
	Verify(ctx context.Context, token string) error
}
