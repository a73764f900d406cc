package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

// SessionService implements the voter identity registry use cases: login
// via verified external identity, demo sessions, and session lookup.
type SessionService struct {
	sessions    ports.SessionRepository
	verifier    ports.IdentityVerifier
	adminEmails map[string]struct{}
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
}

func NewSessionService(
	sessions ports.SessionRepository,
	verifier ports.IdentityVerifier,
	adminEmails []string,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[e] = struct{}{}
	}
	return &SessionService{
		sessions:    sessions,
		verifier:    verifier,
		adminEmails: admins,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

// Login verifies the identity provider credential and creates a voter
// session. An identity that already voted cannot open a new session.
// Repeated logins by an un-voted identity create fresh sessions; the
// double-vote invariant lives on has_voted per identity, not on session
// count.
func (s *SessionService) Login(ctx context.Context, credential string) (*ports.SessionResult, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	voted, err := s.sessions.HasVoted(ctx, identity.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("login: check voted: %w", err)
	}
	if voted {
		return nil, domain.ErrAlreadyVoted
	}

	_, isAdmin := s.adminEmails[identity.Email]
	return s.createSession(ctx, identity, isAdmin)
}

// DemoLogin creates a session for a synthesized single-use identity.
// Demo sessions are never admin.
func (s *SessionService) DemoLogin(ctx context.Context) (*ports.SessionResult, error) {
	identity := &domain.Identity{
		IdentityID: newDemoVoterKey(),
		Email:      "demo@example.com",
		Name:       "Demo User",
	}
	return s.createSession(ctx, identity, false)
}

// GetSession is a pure lookup by session id.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domain.VoterSession, error) {
	return s.sessions.FindByID(ctx, sessionID)
}

func (s *SessionService) createSession(ctx context.Context, identity *domain.Identity, isAdmin bool) (*ports.SessionResult, error) {
	session := &domain.VoterSession{
		SessionID:   newSessionID(),
		IdentityID:  identity.IdentityID,
		Email:       identity.Email,
		DisplayName: identity.Name,
		IsAdmin:     isAdmin,
		HasVoted:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	role := domain.RoleVoter
	if isAdmin {
		role = domain.RoleAdmin
	}
	token, err := signSessionToken(s.jwtSecret, session.SessionID, role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create session: sign token: %w", err)
	}

	s.log.Info().
		Str("session_id", session.SessionID).
		Str("identity_id", identity.IdentityID).
		Bool("is_admin", isAdmin).
		Msg("voter session created")

	return &ports.SessionResult{Token: token, Session: session}, nil
}

// signSessionToken issues the HS256 bearer token carried by callers.
func signSessionToken(secret, sessionID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       role,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
