package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Duration
	err    error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]time.Duration)}
}

func (s *stubTokenStore) Issue(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tokens[token] = ttl
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.tokens[token]
	delete(s.tokens, token)
	return ok, nil
}

func newTokenFixture(isOpen bool) (*TokenService, *stubTokenStore, *stubBallotRepo) {
	store := newStubTokenStore()
	ballots := newStubBallotRepo()
	svc := NewTokenService(store, ballots, &stubStatusRepo{isOpen: isOpen}, time.Hour, discardLogger)
	return svc, store, ballots
}

func TestTokenService_Request_IssuesToken(t *testing.T) {
	svc, store, _ := newTokenFixture(true)

	token, err := svc.Request(context.Background(), "ana@example.com", "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(token, "VOTER_") {
		t.Errorf("token format wrong: %s", token)
	}
	ttl, ok := store.tokens[token]
	if !ok {
		t.Fatal("token must be stored")
	}
	if ttl != time.Hour {
		t.Errorf("expected configured ttl, got %v", ttl)
	}
}

func TestTokenService_Request_ElectionClosed(t *testing.T) {
	svc, store, _ := newTokenFixture(false)

	_, err := svc.Request(context.Background(), "ana@example.com", "1234")
	if !errors.Is(err, domain.ErrElectionClosed) {
		t.Errorf("expected ErrElectionClosed, got %v", err)
	}
	if len(store.tokens) != 0 {
		t.Error("no token may be issued while the election is closed")
	}
}

func TestTokenService_Verify_ConsumesExactlyOnce(t *testing.T) {
	svc, _, _ := newTokenFixture(true)

	token, err := svc.Request(context.Background(), "ana@example.com", "1234")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := svc.Verify(context.Background(), token); err != nil {
		t.Fatalf("first verify must succeed: %v", err)
	}
	if err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("second verify: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_UnknownToken(t *testing.T) {
	svc, _, _ := newTokenFixture(true)

	err := svc.Verify(context.Background(), "VOTER_NOPE1234")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_TokenAlreadyVoted(t *testing.T) {
	svc, store, ballots := newTokenFixture(true)

	// The token was used as a voter key: spent regardless of store state.
	store.tokens["VOTER_SPENT123"] = time.Hour
	ballots.byVoter["VOTER_SPENT123"] = &domain.Ballot{ID: "BLT-X", VoterKey: "VOTER_SPENT123"}

	err := svc.Verify(context.Background(), "VOTER_SPENT123")
	if !errors.Is(err, domain.ErrTokenConsumed) {
		t.Errorf("expected ErrTokenConsumed, got %v", err)
	}
}

func TestTokenService_Verify_ElectionClosed(t *testing.T) {
	svc, store, _ := newTokenFixture(false)
	store.tokens["VOTER_ABCD1234"] = time.Hour

	err := svc.Verify(context.Background(), "VOTER_ABCD1234")
	if !errors.Is(err, domain.ErrElectionClosed) {
		t.Errorf("expected ErrElectionClosed, got %v", err)
	}
	if _, ok := store.tokens["VOTER_ABCD1234"]; !ok {
		t.Error("token must not be consumed while the election is closed")
	}
}
