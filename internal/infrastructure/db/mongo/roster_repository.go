package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

const collectionCandidates = "candidates"

// RosterRepository reads the externally managed candidate reference list.
// The election core never writes to it. Natural collection order is the
// roster order used for tally tie-breaks.
type RosterRepository struct {
	col *mongo.Collection
}

func NewRosterRepository(db *mongo.Database) *RosterRepository {
	return &RosterRepository{col: db.Collection(collectionCandidates)}
}

func (r *RosterRepository) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w: %v", domain.ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	var candidates []domain.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return candidates, nil
}
