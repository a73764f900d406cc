package ports

import (
	"context"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// BallotExport is the raw admin export: every committed ballot plus the
// derived voter-key set.
type BallotExport struct {
	VoterKeys []string        `json:"voter_keys"`
	Ballots   []domain.Ballot `json:"ballots"`
}

// AdminService covers the administrative surface: status management and
// ballot exports. All operations are gated to admin capability by the
// transport layer.
type AdminService interface {
	Status(ctx context.Context) (domain.ElectionStatus, error)

	// Toggle flips the election flag and returns the new status.
	Toggle(ctx context.Context) (domain.ElectionStatus, error)

	// PasswordLogin is the legacy password-based admin login. Returns an
	// admin session token.
	PasswordLogin(ctx context.Context, password string) (string, error)

	Export(ctx context.Context) (*BallotExport, error)

	// ExportCSV writes the denormalized per-position projection.
	ExportCSV(ctx context.Context) ([]byte, error)
}
