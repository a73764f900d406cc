package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/ports"
)

// ResultsHandler handles the public results and candidates endpoints.
type ResultsHandler struct {
	results ports.ResultsService
	roster  ports.RosterRepository
}

func NewResultsHandler(results ports.ResultsService, roster ports.RosterRepository) *ResultsHandler {
	return &ResultsHandler{results: results, roster: roster}
}

type electionTotalsResponse struct {
	TotalCandidates int `json:"total_candidates"`
	TotalBallots    int `json:"total_ballots"`
}

type candidateTallyResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	CouncilVotes   int    `json:"council_votes"`
	ExecutiveVotes int    `json:"executive_votes"`
}

type resultsResponse struct {
	IsOpen  bool                     `json:"is_open"`
	Message string                   `json:"message,omitempty"`
	Stats   electionTotalsResponse   `json:"stats"`
	Results []candidateTallyResponse `json:"results,omitempty"`
}

// Results handles GET /api/results. While the election is open only
// aggregate totals are returned, never per-candidate figures.
//
// @Summary      Election results
// @Tags         results
// @Produce      json
// @Success      200  {object}  resultsResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/results [get]
func (h *ResultsHandler) Results(c echo.Context) error {
	view, err := h.results.Results(c.Request().Context())
	if err != nil {
		return err
	}

	resp := resultsResponse{
		IsOpen: view.IsOpen,
		Stats: electionTotalsResponse{
			TotalCandidates: view.Totals.TotalCandidates,
			TotalBallots:    view.Totals.TotalBallots,
		},
	}
	if view.IsOpen {
		resp.Message = "Election is open. Results are not available yet."
		return c.JSON(http.StatusOK, resp)
	}

	resp.Results = make([]candidateTallyResponse, len(view.Rankings))
	for i, r := range view.Rankings {
		resp.Results[i] = candidateTallyResponse{
			ID:             r.ID,
			Name:           r.Name,
			Position:       r.Position,
			CouncilVotes:   r.CouncilVotes,
			ExecutiveVotes: r.ExecutiveVotes,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Candidates handles GET /api/candidates: the read-only roster
// passthrough.
//
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Success      200  {array}   candidateTallyResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/candidates [get]
func (h *ResultsHandler) Candidates(c echo.Context) error {
	candidates, err := h.roster.ListCandidates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, candidates)
}
