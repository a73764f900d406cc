package ports

import "context"

// CandidateTally is one row of the closed-election leaderboard.
type CandidateTally struct {
	ID             string
	Name           string
	Position       string
	CouncilVotes   int
	ExecutiveVotes int
}

// ElectionTotals are the only figures exposed while the election is open.
type ElectionTotals struct {
	TotalCandidates int
	TotalBallots    int
}

// ResultsView is the results query response. Rankings is nil while the
// election is open: partial per-candidate results must never leak.
type ResultsView struct {
	IsOpen   bool
	Totals   ElectionTotals
	Rankings []CandidateTally
}

// ResultsService is the read-side tally projection.
type ResultsService interface {
	Results(ctx context.Context) (*ResultsView, error)
}
