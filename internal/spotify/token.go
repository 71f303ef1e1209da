package spotify

import (
	"context"
	"sync"
	"time"
)

// TokenExpiryBuffer is the window (seconds) before actual expiry in which a
// cached token is treated as stale, so a token never expires mid-flight.
const TokenExpiryBuffer = 60

// TokenCache is a bearer token with its expiry time.
type TokenCache struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsValid reports whether the token is still usable with the buffer applied.
func (tc *TokenCache) IsValid() bool {
	if tc == nil || tc.Token == "" {
		return false
	}
	return time.Now().Add(TokenExpiryBuffer * time.Second).Before(tc.ExpiresAt)
}

// TokenStore holds the one cached client-credentials token. Implementations
// must be safe for concurrent use.
type TokenStore interface {
	Get(ctx context.Context) (*TokenCache, error)
	Set(ctx context.Context, token string, expiresIn int) error
}

// MemoryTokenStore keeps the token in process memory. This is the default;
// the Redis store survives restarts when one is configured.
type MemoryTokenStore struct {
	mu     sync.Mutex
	cached *TokenCache
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(_ context.Context) (*TokenCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		return nil, nil
	}
	cached := *s.cached
	return &cached, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, token string, expiresIn int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = &TokenCache{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	return nil
}
