package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

const collectionBallots = "ballots"

// BallotRepository is the append-only ballot store backed by MongoDB.
// The unique index on voter_key makes the duplicate check and the insert
// one atomic operation: under concurrent double-submit exactly one insert
// succeeds and the other surfaces domain.ErrDuplicateVoter. The source
// system's separate voter_ids list becomes this derived index, which
// cannot drift from the ballots.
type BallotRepository struct {
	col *mongo.Collection
}

func NewBallotRepository(db *mongo.Database) *BallotRepository {
	return &BallotRepository{col: db.Collection(collectionBallots)}
}

// Record appends the ballot. Duplicate voter keys are rejected by the
// unique index, not by a separate read.
func (r *BallotRepository) Record(ctx context.Context, b *domain.Ballot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateVoter
		}
		return fmt.Errorf("insert ballot: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// All returns every committed ballot in insertion order. Each call opens a
// fresh cursor.
func (r *BallotRepository) All(ctx context.Context) ([]domain.Ballot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "cast_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find ballots: %w: %v", domain.ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	var ballots []domain.Ballot
	if err := cur.All(ctx, &ballots); err != nil {
		return nil, fmt.Errorf("decode ballots: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return ballots, nil
}

// ContainsVoter reports whether a ballot exists for the voter key.
func (r *BallotRepository) ContainsVoter(ctx context.Context, voterKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.col.FindOne(ctx, bson.M{"voter_key": voterKey}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find voter key: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return true, nil
}

// Count returns the number of committed ballots.
func (r *BallotRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count ballots: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return n, nil
}

// EnsureIndexes creates the unique voter_key index. Must run before the
// first submission is accepted.
func (r *BallotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "voter_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "cast_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
