package ports

import (
	"context"
	"time"
)

// SubmitBallotInput is the DTO passed from the transport layer to
// VoteService. SessionID is empty for anonymous (demo-mode) submissions.
type SubmitBallotInput struct {
	SessionID          string
	CouncilSelection   []string
	ExecutiveSelection []string
}

// SubmitResult is returned on a successful ballot commit.
type SubmitResult struct {
	BallotID string
	VoterKey string
	CastAt   time.Time
	// DemoVoter is true when the submission had no session and a
	// single-use demo identity was synthesized.
	DemoVoter bool
}

// VoteService is the ballot submission state machine.
type VoteService interface {
	Submit(ctx context.Context, input SubmitBallotInput) (*SubmitResult, error)
}

// SubmissionEvent is the audit record emitted for every submission attempt.
type SubmissionEvent struct {
	VoterKey string
	BallotID string
	Outcome  string // "accepted" or "rejected"
	Reason   string // rejection reason code, empty on accept
	At       time.Time
}

// AuditSink accepts submission events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event SubmissionEvent)
}

// AuditRepository persists submission events to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *SubmissionEvent) error
}
