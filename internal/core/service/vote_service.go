package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/phoenix-council/election-api/internal/api/metrics"
	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

const (
	defaultCouncilSize   = 15
	defaultExecutiveSize = 7
)

type voteService struct {
	ballots       ports.BallotRepository
	sessions      ports.SessionRepository
	status        ports.StatusRepository
	roster        ports.RosterRepository
	audit         ports.AuditSink // optional
	councilSize   int
	executiveSize int
	log           zerolog.Logger
}

// NewVoteService returns the ballot submission state machine. audit may be
// nil, in which case no audit events are emitted.
func NewVoteService(
	ballots ports.BallotRepository,
	sessions ports.SessionRepository,
	status ports.StatusRepository,
	roster ports.RosterRepository,
	audit ports.AuditSink,
	councilSize, executiveSize int,
	log zerolog.Logger,
) ports.VoteService {
	if councilSize <= 0 {
		councilSize = defaultCouncilSize
	}
	if executiveSize <= 0 {
		executiveSize = defaultExecutiveSize
	}
	return &voteService{
		ballots:       ballots,
		sessions:      sessions,
		status:        status,
		roster:        roster,
		audit:         audit,
		councilSize:   councilSize,
		executiveSize: executiveSize,
		log:           log,
	}
}

// Submit runs the submission pipeline in fixed order, first failure wins:
// resolve identity, already-voted check, selection shape, roster membership,
// final status gate, atomic record, session mark. The status re-read before
// Record is the commit gate: a submission that passes it commits even if
// the election closes before the write lands.
func (s *voteService) Submit(ctx context.Context, in ports.SubmitBallotInput) (*ports.SubmitResult, error) {
	// 1. Resolve the voter key. No session means demo mode: a brand-new,
	//    always-eligible single-use identity.
	var sess *domain.VoterSession
	voterKey := ""
	if in.SessionID != "" {
		found, err := s.sessions.FindByID(ctx, in.SessionID)
		if err != nil {
			return nil, fmt.Errorf("submit: resolve session: %w", err)
		}
		sess = found
		voterKey = sess.IdentityID
	} else {
		voterKey = newDemoVoterKey()
	}

	// 2. Authenticated voters who already voted are terminally rejected.
	if sess != nil && sess.HasVoted {
		return nil, s.reject(voterKey, "already_voted", domain.ErrAlreadyVoted)
	}

	// 3. Selection shape: both selections non-empty and exactly sized.
	if len(in.CouncilSelection) == 0 || len(in.ExecutiveSelection) == 0 {
		return nil, s.reject(voterKey, "invalid_selection_size",
			fmt.Errorf("%w: both selections are required", domain.ErrInvalidSelection))
	}
	if len(in.CouncilSelection) != s.councilSize {
		return nil, s.reject(voterKey, "invalid_selection_size",
			fmt.Errorf("%w: council selection must have exactly %d candidates", domain.ErrInvalidSelection, s.councilSize))
	}
	if len(in.ExecutiveSelection) != s.executiveSize {
		return nil, s.reject(voterKey, "invalid_selection_size",
			fmt.Errorf("%w: executive selection must have exactly %d candidates", domain.ErrInvalidSelection, s.executiveSize))
	}

	// 4. Every selected id must exist in the current roster.
	candidates, err := s.roster.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("submit: load roster: %w", err)
	}
	roster := domain.NewRoster(candidates)
	for _, id := range in.CouncilSelection {
		if !roster.Contains(id) {
			return nil, s.reject(voterKey, "unknown_candidate",
				fmt.Errorf("%w: %s", domain.ErrUnknownCandidate, id))
		}
	}
	for _, id := range in.ExecutiveSelection {
		if !roster.Contains(id) {
			return nil, s.reject(voterKey, "unknown_candidate",
				fmt.Errorf("%w: %s", domain.ErrUnknownCandidate, id))
		}
	}

	// 5. Final status gate, re-read immediately before commit to narrow the
	//    window between validation and write.
	status, err := s.status.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("submit: read election status: %w", err)
	}
	if !status.IsOpen {
		return nil, s.reject(voterKey, "election_closed", domain.ErrElectionClosed)
	}

	// 6. Commit. Record's uniqueness check on voter_key is atomic with the
	//    write, so a concurrent double-submit loses here even after step 2.
	ballot := &domain.Ballot{
		ID:                 newBallotID(),
		VoterKey:           voterKey,
		CouncilSelection:   in.CouncilSelection,
		ExecutiveSelection: in.ExecutiveSelection,
		CastAt:             time.Now().UTC(),
	}
	if err := s.ballots.Record(ctx, ballot); err != nil {
		if errors.Is(err, domain.ErrDuplicateVoter) {
			return nil, s.reject(voterKey, "duplicate_voter", domain.ErrAlreadyVoted)
		}
		metrics.BallotRejectionsTotal.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("submit: record ballot: %w", err)
	}

	// 7. The ballot is durable; flip the session flag. A failure here leaves
	//    a recoverable inconsistency for the reconciler, never a lost vote.
	if sess != nil {
		if err := s.sessions.MarkVoted(ctx, sess.SessionID); err != nil {
			metrics.InconsistentCommitsTotal.Inc()
			s.log.Error().Err(err).
				Str("ballot_id", ballot.ID).
				Str("session_id", sess.SessionID).
				Str("identity_id", sess.IdentityID).
				Msg(domain.ErrInconsistentState.Error())
		}
	}

	voterType := "demo"
	if sess != nil {
		voterType = "session"
	}
	metrics.BallotsSubmittedTotal.WithLabelValues(voterType).Inc()
	s.emit(ports.SubmissionEvent{
		VoterKey: voterKey,
		BallotID: ballot.ID,
		Outcome:  "accepted",
		At:       ballot.CastAt,
	})
	s.log.Info().
		Str("ballot_id", ballot.ID).
		Str("voter_key", voterKey).
		Str("voter_type", voterType).
		Msg("ballot submitted")

	return &ports.SubmitResult{
		BallotID:  ballot.ID,
		VoterKey:  voterKey,
		CastAt:    ballot.CastAt,
		DemoVoter: sess == nil,
	}, nil
}

// reject records the rejection in metrics and the audit trail and passes
// the error through.
func (s *voteService) reject(voterKey, reason string, err error) error {
	metrics.BallotRejectionsTotal.WithLabelValues(reason).Inc()
	s.emit(ports.SubmissionEvent{
		VoterKey: voterKey,
		Outcome:  "rejected",
		Reason:   reason,
		At:       time.Now().UTC(),
	})
	s.log.Debug().Str("voter_key", voterKey).Str("reason", reason).Msg("ballot rejected")
	return err
}

func (s *voteService) emit(event ports.SubmissionEvent) {
	if s.audit != nil {
		s.audit.Enqueue(event)
	}
}
