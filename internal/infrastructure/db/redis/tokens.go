package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// RefreshTokenStore keeps refresh tokens in Redis.
// Key format: refresh:<token> → user id, expiring with the token TTL, so
// Redis owns expiry and the service never sees a stale token.
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a RefreshTokenStore wrapping the given client.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save records the token for userID until ttl elapses.
func (s *RefreshTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Get resolves the token to its user id. Unknown and expired tokens both
// come back as domain.ErrInvalidToken.
func (s *RefreshTokenStore) Get(ctx context.Context, token string) (int64, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrInvalidToken
		}
		return 0, fmt.Errorf("get refresh token: %w", err)
	}
	return userID, nil
}

// Delete consumes the token (rotation).
func (s *RefreshTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) key(token string) string {
	return "refresh:" + token
}
