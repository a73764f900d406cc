package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

type stubResultsService struct {
	resultsFn func(ctx context.Context) (*ports.ResultsView, error)
}

func (s *stubResultsService) Results(ctx context.Context) (*ports.ResultsView, error) {
	return s.resultsFn(ctx)
}

type stubRosterRepo struct {
	candidates []domain.Candidate
}

func (r *stubRosterRepo) ListCandidates(_ context.Context) ([]domain.Candidate, error) {
	return r.candidates, nil
}

func TestResultsHandler_OpenElection(t *testing.T) {
	stub := &stubResultsService{
		resultsFn: func(ctx context.Context) (*ports.ResultsView, error) {
			return &ports.ResultsView{
				IsOpen: true,
				Totals: ports.ElectionTotals{TotalCandidates: 20, TotalBallots: 7},
			}, nil
		},
	}
	handler := NewResultsHandler(stub, &stubRosterRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/results", "")
	if err := handler.Results(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["is_open"] != true {
		t.Fatalf("expected is_open=true, got %v", resp["is_open"])
	}
	if _, present := resp["results"]; present {
		t.Fatal("per-candidate results must be omitted while the election is open")
	}
	stats, ok := resp["stats"].(map[string]any)
	if !ok || stats["total_ballots"] != float64(7) {
		t.Fatalf("unexpected stats: %v", resp["stats"])
	}
}

func TestResultsHandler_ClosedElection(t *testing.T) {
	stub := &stubResultsService{
		resultsFn: func(ctx context.Context) (*ports.ResultsView, error) {
			return &ports.ResultsView{
				IsOpen: false,
				Totals: ports.ElectionTotals{TotalCandidates: 2, TotalBallots: 1},
				Rankings: []ports.CandidateTally{
					{ID: "cand_01", Name: "Candidate 1", Position: "Member", CouncilVotes: 1},
					{ID: "cand_02", Name: "Candidate 2", Position: "Member"},
				},
			}, nil
		},
	}
	handler := NewResultsHandler(stub, &stubRosterRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/results", "")
	if err := handler.Results(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	results, ok := resp["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("expected 2 ranking rows, got %v", resp["results"])
	}
	first, _ := results[0].(map[string]any)
	if first["id"] != "cand_01" || first["council_votes"] != float64(1) {
		t.Fatalf("unexpected first row: %v", first)
	}
}

func TestResultsHandler_Candidates(t *testing.T) {
	roster := &stubRosterRepo{candidates: []domain.Candidate{
		{ID: "cand_01", Name: "Candidate 1", Position: "Member"},
	}}
	handler := NewResultsHandler(&stubResultsService{}, roster)

	c, rec := newTestContext(t, http.MethodGet, "/api/candidates", "")
	if err := handler.Candidates(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "cand_01" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}
