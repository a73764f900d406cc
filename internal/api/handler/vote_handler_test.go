package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

type stubVoteService struct {
	submitFn func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error)
}

func (s *stubVoteService) Submit(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, input)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestVoteHandler_Submit_Success(t *testing.T) {
	castAt := time.Now().UTC()
	stub := &stubVoteService{
		submitFn: func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
			if input.SessionID != "SES-1" {
				t.Fatalf("expected session id SES-1, got %q", input.SessionID)
			}
			if len(input.CouncilSelection) != 2 || len(input.ExecutiveSelection) != 1 {
				t.Fatalf("unexpected selections: %v / %v", input.CouncilSelection, input.ExecutiveSelection)
			}
			return &ports.SubmitResult{BallotID: "BLT-ABCD1234", VoterKey: "identity-1", CastAt: castAt}, nil
		},
	}
	handler := NewVoteHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/votes/submit",
		`{"council_selection":["cand_01","cand_02"],"executive_selection":["cand_01"]}`)
	c.Set("session_id", "SES-1")

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["ballot_id"] != "BLT-ABCD1234" {
		t.Fatalf("expected ballot_id, got %v", resp["ballot_id"])
	}
	if resp["message"] != "Vote submitted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestVoteHandler_Submit_AnonymousIsDemoPath(t *testing.T) {
	stub := &stubVoteService{
		submitFn: func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
			if input.SessionID != "" {
				t.Fatalf("anonymous request must pass empty session id, got %q", input.SessionID)
			}
			return &ports.SubmitResult{BallotID: "BLT-ABCD1234", VoterKey: "DEMO_USER_X", DemoVoter: true}, nil
		},
	}
	handler := NewVoteHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/votes/submit",
		`{"council_selection":["cand_01"],"executive_selection":["cand_01"]}`)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["demo_voter"] != true {
		t.Fatalf("expected demo_voter=true, got %v", resp["demo_voter"])
	}
}

func TestVoteHandler_Submit_InvalidPayload(t *testing.T) {
	stub := &stubVoteService{
		submitFn: func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewVoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/votes/submit", "not-json")

	err := handler.Submit(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestVoteHandler_Submit_MissingSelections(t *testing.T) {
	stub := &stubVoteService{
		submitFn: func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewVoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/votes/submit",
		`{"council_selection":["cand_01"]}`)

	err := handler.Submit(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestVoteHandler_Submit_DomainErrorPassesThrough(t *testing.T) {
	stub := &stubVoteService{
		submitFn: func(ctx context.Context, input ports.SubmitBallotInput) (*ports.SubmitResult, error) {
			return nil, domain.ErrAlreadyVoted
		},
	}
	handler := NewVoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/votes/submit",
		`{"council_selection":["cand_01"],"executive_selection":["cand_01"]}`)

	// Domain errors surface untouched for the central error handler.
	if err := handler.Submit(c); !errors.Is(err, domain.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}
