package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the refresh-token allow-list. Only tokens whose jti is
// present may be exchanged for a new pair; revoking removes the jti.
type TokenStore interface {
	Save(ctx context.Context, userID uint, jti string, ttl time.Duration) error
	Exists(ctx context.Context, userID uint, jti string) (bool, error)
	Revoke(ctx context.Context, userID uint, jti string) error
	RevokeAll(ctx context.Context, userID uint) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func refreshKey(userID uint, jti string) string {
	return fmt.Sprintf("refresh:%d:%s", userID, jti)
}

func (s *redisTokenStore) Save(ctx context.Context, userID uint, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(userID, jti), "1", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uint, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, refreshKey(userID, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uint, jti string) error {
	return s.client.Del(ctx, refreshKey(userID, jti)).Err()
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("refresh:%d:*", userID)
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
