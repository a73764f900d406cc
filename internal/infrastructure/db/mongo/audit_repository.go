package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
)

const collectionBallotEvents = "ballot_events"

// AuditRepository persists submission events to the ballot_events audit
// collection. Failures here are non-fatal for submissions: the audit trail
// is a record, not a gate.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionBallotEvents)}
}

func (r *AuditRepository) Insert(ctx context.Context, event *ports.SubmissionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"voter_key":   event.VoterKey,
		"outcome":     event.Outcome,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.BallotID != "" {
		doc["ballot_id"] = event.BallotID
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert ballot event: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
