package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// TokenStore holds one-time voter tokens in Redis.
// Key format: voter_token:<token>
//
// Consume uses GETDEL so the existence check and the removal are a single
// atomic operation: two concurrent verifies of the same token cannot both
// succeed.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Issue stores the token with the given time-to-live.
func (s *TokenStore) Issue(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("issue token: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Consume atomically removes the token and reports whether it existed.
func (s *TokenStore) Consume(ctx context.Context, token string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(token)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("consume token: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return true, nil
}

func (s *TokenStore) key(token string) string {
	return "voter_token:" + token
}
