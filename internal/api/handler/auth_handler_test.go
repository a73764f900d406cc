package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

type stubSessionService struct {
	loginFn      func(ctx context.Context, credential string) (*ports.SessionResult, error)
	demoLoginFn  func(ctx context.Context) (*ports.SessionResult, error)
	getSessionFn func(ctx context.Context, sessionID string) (*domain.VoterSession, error)
}

func (s *stubSessionService) Login(ctx context.Context, credential string) (*ports.SessionResult, error) {
	return s.loginFn(ctx, credential)
}

func (s *stubSessionService) DemoLogin(ctx context.Context) (*ports.SessionResult, error) {
	return s.demoLoginFn(ctx)
}

func (s *stubSessionService) GetSession(ctx context.Context, sessionID string) (*domain.VoterSession, error) {
	return s.getSessionFn(ctx, sessionID)
}

func testSession(sessionID string) *domain.VoterSession {
	return &domain.VoterSession{
		SessionID:   sessionID,
		IdentityID:  "identity-1",
		Email:       "ana@example.com",
		DisplayName: "Ana",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, credential string) (*ports.SessionResult, error) {
			if credential != "assertion-abc" {
				t.Fatalf("unexpected credential: %q", credential)
			}
			return &ports.SessionResult{Token: "token123", Session: testSession("SES-1")}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"assertion":"assertion-abc"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "ana@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_MissingAssertion(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, credential string) (*ports.SessionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{}`)

	err := handler.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_AlreadyVoted(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, credential string) (*ports.SessionResult, error) {
			return nil, domain.ErrAlreadyVoted
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"assertion":"assertion-abc"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestAuthHandler_DemoLogin(t *testing.T) {
	stub := &stubSessionService{
		demoLoginFn: func(ctx context.Context) (*ports.SessionResult, error) {
			sess := testSession("SES-1")
			sess.IdentityID = "DEMO_USER_ABCD1234"
			sess.DisplayName = "Demo User"
			return &ports.SessionResult{Token: "token123", Session: sess}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/demo", "")
	if err := handler.DemoLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["is_admin"] != false {
		t.Fatalf("demo login must never be admin, got %v", resp["is_admin"])
	}
}

func TestAuthHandler_Session(t *testing.T) {
	stub := &stubSessionService{
		getSessionFn: func(ctx context.Context, sessionID string) (*domain.VoterSession, error) {
			if sessionID != "SES-1" {
				t.Fatalf("unexpected session id: %q", sessionID)
			}
			sess := testSession(sessionID)
			sess.HasVoted = true
			return sess, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/session", "")
	c.Set("session_id", "SES-1")

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != true || resp["has_voted"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Session_MissingClaims(t *testing.T) {
	stub := &stubSessionService{
		getSessionFn: func(ctx context.Context, sessionID string) (*domain.VoterSession, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/auth/session", "")

	err := handler.Session(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	handler := NewAuthHandler(&stubSessionService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
