package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

const collectionStatus = "election_status"

// statusDocID is the fixed id of the singleton status document.
const statusDocID = "current"

// StatusRepository persists the single election open/closed flag.
type StatusRepository struct {
	col *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{col: db.Collection(collectionStatus)}
}

// Get reads the status. A missing document means the election defaults to
// open, matching the source system.
func (r *StatusRepository) Get(ctx context.Context) (domain.ElectionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		IsOpen bool `bson:"is_open"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": statusDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ElectionStatus{IsOpen: true}, nil
		}
		return domain.ElectionStatus{}, fmt.Errorf("read election status: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return domain.ElectionStatus{IsOpen: doc.IsOpen}, nil
}

// Set writes the status synchronously. Success means the write landed.
func (r *StatusRepository) Set(ctx context.Context, isOpen bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": statusDocID},
		bson.M{"$set": bson.M{"is_open": isOpen}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("write election status: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
