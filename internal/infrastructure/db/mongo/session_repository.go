package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

const collectionSessions = "voter_sessions"

// SessionRepository persists voter sessions in MongoDB, keyed by session id.
type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.VoterSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert session: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.VoterSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.VoterSession
	err := r.col.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return &s, nil
}

// MarkVoted flips has_voted on the session. The flag never flips back.
func (r *SessionRepository) MarkVoted(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{"has_voted": true}},
	)
	if err != nil {
		return fmt.Errorf("mark voted: %w: %v", domain.ErrStorageUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// MarkVotedByIdentity flips has_voted on every session of the identity.
// Used by the reconciler; matching zero sessions is not an error.
func (r *SessionRepository) MarkVotedByIdentity(ctx context.Context, identityID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"identity_id": identityID},
		bson.M{"$set": bson.M{"has_voted": true}},
	)
	if err != nil {
		return fmt.Errorf("mark voted by identity: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// HasVoted reports whether any session of the identity has voted.
func (r *SessionRepository) HasVoted(ctx context.Context, identityID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.col.FindOne(ctx, bson.M{"identity_id": identityID, "has_voted": true}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("check voted: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return true, nil
}

func (r *SessionRepository) ListUnvoted(ctx context.Context) ([]domain.VoterSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"has_voted": false})
	if err != nil {
		return nil, fmt.Errorf("find unvoted sessions: %w: %v", domain.ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	var sessions []domain.VoterSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return sessions, nil
}

// EnsureIndexes creates the identity lookup index used by HasVoted and the
// reconciler.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "identity_id", Value: 1}}},
		{Keys: bson.D{{Key: "has_voted", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
