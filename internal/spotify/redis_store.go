package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// tokenKey is where the cached Spotify token lives in Redis.
const tokenKey = "spotify_access_token"

// RedisTokenStore caches the Spotify token in Redis so a restart does not
// force an extra token fetch. The Redis TTL gets a small buffer on top of
// the token lifetime to cover clock skew.
type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) Get(ctx context.Context) (*TokenCache, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	tokenJSON, err := s.Client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var cached TokenCache
	if err := json.Unmarshal([]byte(tokenJSON), &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token cache: %w", err)
	}
	return &cached, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, token string, expiresIn int) error {
	if s.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	cached := &TokenCache{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	tokenJSON, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal token cache: %w", err)
	}

	ttl := time.Duration(expiresIn+TokenExpiryBuffer) * time.Second
	if err := s.Client.Set(ctx, tokenKey, tokenJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}
	return nil
}
