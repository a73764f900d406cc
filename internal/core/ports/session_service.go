package ports

import (
	"context"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// IdentityVerifier validates an external identity provider credential and
// yields the verified identity triple. Failures are opaque: no partial
// trust.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*domain.Identity, error)
}

// SessionResult is returned after a successful login.
type SessionResult struct {
	Token   string
	Session *domain.VoterSession
}

// SessionService manages the voter identity registry's session lifecycle.
type SessionService interface {
	// Login verifies the provider credential and creates a voter session.
	// Returns domain.ErrAlreadyVoted when the identity already voted.
	Login(ctx context.Context, credential string) (*SessionResult, error)

	// DemoLogin creates a session for a synthesized demo identity.
	DemoLogin(ctx context.Context) (*SessionResult, error)

	// GetSession is a pure lookup by session id.
	GetSession(ctx context.Context, sessionID string) (*domain.VoterSession, error)
}
