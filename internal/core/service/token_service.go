package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/phoenix-council/election-api/internal/api/metrics"
	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

// TokenService implements the legacy/demo offline-verification path:
// single-use voter tokens that stand in for an external identity.
type TokenService struct {
	store   ports.TokenStore
	ballots ports.BallotRepository
	status  ports.StatusRepository
	ttl     time.Duration
	log     zerolog.Logger
}

func NewTokenService(
	store ports.TokenStore,
	ballots ports.BallotRepository,
	status ports.StatusRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{store: store, ballots: ballots, status: status, ttl: ttl, log: log}
}

// Request issues a fresh one-time voter token. In a real deployment the
// token would be delivered out of band (email); here it is returned to the
// caller and logged.
func (s *TokenService) Request(ctx context.Context, email, phoneLast4 string) (string, error) {
	status, err := s.status.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("request token: read status: %w", err)
	}
	if !status.IsOpen {
		return "", domain.ErrElectionClosed
	}

	token := newVoterToken()
	if err := s.store.Issue(ctx, token, s.ttl); err != nil {
		return "", fmt.Errorf("request token: issue: %w", err)
	}

	metrics.VoterTokensIssuedTotal.Inc()
	s.log.Info().Str("token", token).Str("email", email).Str("phone_last4", phoneLast4).Msg("voter token issued")
	return token, nil
}

// Verify consumes the token exactly once. Unknown and already-consumed
// tokens are indistinguishable to the caller.
func (s *TokenService) Verify(ctx context.Context, token string) error {
	status, err := s.status.Get(ctx)
	if err != nil {
		return fmt.Errorf("verify token: read status: %w", err)
	}
	if !status.IsOpen {
		return domain.ErrElectionClosed
	}

	// A token that already cast a ballot is spent regardless of store state.
	used, err := s.ballots.ContainsVoter(ctx, token)
	if err != nil {
		return fmt.Errorf("verify token: check voter key: %w", err)
	}
	if used {
		return domain.ErrTokenConsumed
	}

	ok, err := s.store.Consume(ctx, token)
	if err != nil {
		return fmt.Errorf("verify token: consume: %w", err)
	}
	if !ok {
		return domain.ErrInvalidToken
	}

	s.log.Info().Str("token", token).Msg("voter token verified")
	return nil
}
