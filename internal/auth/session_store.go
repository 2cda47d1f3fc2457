package auth

import (
	"context"
	"time"

	"stockfolio/internal/cache"
)

const revokedKeyPrefix = "revoked_session:"

// SessionStoreInterface defines session revocation operations.
type SessionStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// SessionStore records revoked session token IDs in redis so logout takes
// effect before the token expires on its own.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Revoke marks a token ID as logged out until the token would expire anyway.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a token ID has been revoked. If redis is
// unavailable the token is treated as still valid.
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) bool {
	data, err := s.cache.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false
	}
	return data != nil
}
