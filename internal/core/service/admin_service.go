package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

// AdminService covers the administrative surface: election status
// management, the legacy password login, and ballot exports.
type AdminService struct {
	status        ports.StatusRepository
	ballots       ports.BallotRepository
	roster        ports.RosterRepository
	passwordHash  string
	jwtSecret     string
	tokenTTL      time.Duration
	councilSize   int
	executiveSize int
	log           zerolog.Logger
}

func NewAdminService(
	status ports.StatusRepository,
	ballots ports.BallotRepository,
	roster ports.RosterRepository,
	passwordHash, jwtSecret string,
	tokenTTL time.Duration,
	councilSize, executiveSize int,
	log zerolog.Logger,
) *AdminService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if councilSize <= 0 {
		councilSize = defaultCouncilSize
	}
	if executiveSize <= 0 {
		executiveSize = defaultExecutiveSize
	}
	return &AdminService{
		status:        status,
		ballots:       ballots,
		roster:        roster,
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		councilSize:   councilSize,
		executiveSize: executiveSize,
		log:           log,
	}
}

func (s *AdminService) Status(ctx context.Context) (domain.ElectionStatus, error) {
	return s.status.Get(ctx)
}

// Toggle flips the election flag. The write must land durably before the
// new status is reported back.
func (s *AdminService) Toggle(ctx context.Context) (domain.ElectionStatus, error) {
	current, err := s.status.Get(ctx)
	if err != nil {
		return domain.ElectionStatus{}, fmt.Errorf("toggle status: read: %w", err)
	}

	next := domain.ElectionStatus{IsOpen: !current.IsOpen}
	if err := s.status.Set(ctx, next.IsOpen); err != nil {
		return domain.ElectionStatus{}, fmt.Errorf("toggle status: write: %w", err)
	}

	s.log.Info().Bool("is_open", next.IsOpen).Msg("election status toggled")
	return next, nil
}

// PasswordLogin is the legacy password-based admin login. Disabled when no
// hash is configured.
func (s *AdminService) PasswordLogin(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := signSessionToken(s.jwtSecret, "", domain.RoleAdmin, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("admin login: sign token: %w", err)
	}
	s.log.Info().Msg("admin authenticated via password")
	return token, nil
}

// Export returns every committed ballot plus the derived voter-key set.
func (s *AdminService) Export(ctx context.Context) (*ports.BallotExport, error) {
	ballots, err := s.ballots.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("export ballots: %w", err)
	}

	keys := make([]string, len(ballots))
	for i, b := range ballots {
		keys[i] = b.VoterKey
	}
	return &ports.BallotExport{VoterKeys: keys, Ballots: ballots}, nil
}

// ExportCSV writes the denormalized per-position projection: one row per
// ballot with executive picks first, then the council picks that are not
// also executive picks. Candidate ids resolve to roster names.
func (s *AdminService) ExportCSV(ctx context.Context) ([]byte, error) {
	ballots, err := s.ballots.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("export csv: read ballots: %w", err)
	}
	candidates, err := s.roster.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("export csv: load roster: %w", err)
	}
	roster := domain.NewRoster(candidates)

	councilCols := s.councilSize - s.executiveSize

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Voter ID"}
	for i := 0; i < s.executiveSize; i++ {
		header = append(header, fmt.Sprintf("Executive %d", i+1))
	}
	for i := 0; i < councilCols; i++ {
		header = append(header, fmt.Sprintf("Council %d", i+1))
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export csv: write header: %w", err)
	}

	for _, b := range ballots {
		row := []string{b.VoterKey}

		execSet := make(map[string]struct{}, len(b.ExecutiveSelection))
		for _, id := range b.ExecutiveSelection {
			execSet[id] = struct{}{}
		}

		row = appendNames(row, b.ExecutiveSelection, roster, s.executiveSize)

		var remaining []string
		for _, id := range b.CouncilSelection {
			if _, ok := execSet[id]; !ok {
				remaining = append(remaining, id)
			}
		}
		row = appendNames(row, remaining, roster, councilCols)

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// appendNames appends up to width candidate names, padding short rows with
// empty cells so every row has the same shape.
func appendNames(row []string, ids []string, roster *domain.Roster, width int) []string {
	if len(ids) > width {
		ids = ids[:width]
	}
	for _, id := range ids {
		name := roster.Name(id)
		if name == "" {
			name = "Unknown ID: " + id
		}
		row = append(row, name)
	}
	for i := len(ids); i < width; i++ {
		row = append(row, "")
	}
	return row
}
