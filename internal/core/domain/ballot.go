package domain

import (
	"errors"
	"time"
)

// Ballot is one voter's final, immutable submission. Ballots are only ever
// appended; a committed ballot is never updated or deleted.
type Ballot struct {
	ID                 string    `json:"id" bson:"_id"`
	VoterKey           string    `json:"voter_key" bson:"voter_key"`
	CouncilSelection   []string  `json:"council_selection" bson:"council_selection"`
	ExecutiveSelection []string  `json:"executive_selection" bson:"executive_selection"`
	CastAt             time.Time `json:"cast_at" bson:"cast_at"`
}

var ErrInvalidSelection = errors.New("invalid selection size")
var ErrUnknownCandidate = errors.New("unknown candidate")
var ErrAlreadyVoted = errors.New("voter has already voted")
var ErrDuplicateVoter = errors.New("duplicate voter key")
var ErrElectionClosed = errors.New("election is closed")
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrInconsistentState marks a ballot that was durably committed while the
// paired session update failed. Never surfaced to callers as a failure;
// the reconciler repairs it.
var ErrInconsistentState = errors.New("ballot committed but session not marked")
