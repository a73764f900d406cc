package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/phoenix-council/election-api/internal/api/metrics"
	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

type resultsService struct {
	ballots ports.BallotRepository
	status  ports.StatusRepository
	roster  ports.RosterRepository
	log     zerolog.Logger
}

// NewResultsService returns the read-side tally projection.
func NewResultsService(
	ballots ports.BallotRepository,
	status ports.StatusRepository,
	roster ports.RosterRepository,
	log zerolog.Logger,
) ports.ResultsService {
	return &resultsService{ballots: ballots, status: status, roster: roster, log: log}
}

// Results returns aggregate counts while the election is open and the full
// ranked tally once it is closed. Per-candidate breakdowns are never
// exposed while voting is open.
func (s *resultsService) Results(ctx context.Context) (*ports.ResultsView, error) {
	status, err := s.status.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("results: read election status: %w", err)
	}

	candidates, err := s.roster.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("results: load roster: %w", err)
	}

	if status.IsOpen {
		count, err := s.ballots.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("results: count ballots: %w", err)
		}
		return &ports.ResultsView{
			IsOpen: true,
			Totals: ports.ElectionTotals{
				TotalCandidates: len(candidates),
				TotalBallots:    int(count),
			},
		}, nil
	}

	start := time.Now()
	ballots, err := s.ballots.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("results: read ballots: %w", err)
	}

	rankings := tallyBallots(domain.NewRoster(candidates), ballots)
	metrics.TallyDuration.Observe(time.Since(start).Seconds())
	s.log.Debug().Int("ballots", len(ballots)).Int("candidates", len(candidates)).Msg("tally computed")

	return &ports.ResultsView{
		IsOpen: false,
		Totals: ports.ElectionTotals{
			TotalCandidates: len(candidates),
			TotalBallots:    len(ballots),
		},
		Rankings: rankings,
	}, nil
}

// tallyBallots aggregates per-candidate council and executive counts and
// ranks them descending by (council_votes, executive_votes). The sort is
// stable with roster order as the tie-break, so equal-count candidates
// keep a reproducible ordering across runs. Ballot ids absent from the
// roster are skipped: ballots are immutable, stale references can only be
// excluded, not fixed.
func tallyBallots(roster *domain.Roster, ballots []domain.Ballot) []ports.CandidateTally {
	rankings := make([]ports.CandidateTally, len(roster.Candidates))
	for i, c := range roster.Candidates {
		rankings[i] = ports.CandidateTally{ID: c.ID, Name: c.Name, Position: c.Position}
	}

	for _, b := range ballots {
		for _, id := range b.CouncilSelection {
			if i := roster.Position(id); i >= 0 {
				rankings[i].CouncilVotes++
			}
		}
		for _, id := range b.ExecutiveSelection {
			if i := roster.Position(id); i >= 0 {
				rankings[i].ExecutiveVotes++
			}
		}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].CouncilVotes != rankings[j].CouncilVotes {
			return rankings[i].CouncilVotes > rankings[j].CouncilVotes
		}
		return rankings[i].ExecutiveVotes > rankings[j].ExecutiveVotes
	})
	return rankings
}
