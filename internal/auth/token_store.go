package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"hevatrack/internal/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStoreInterface defines the session token revocation store.
type TokenStoreInterface interface {
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// TokenStore records revoked session tokens in Redis until their natural
// expiry. Tokens are keyed by digest so raw tokens never land in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistToken marks a token revoked for ttl.
func (s *TokenStore) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+digest(token), []byte("1"), ttl)
}

// IsTokenBlacklisted checks whether a token has been revoked.
func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	data, err := s.cache.Get(ctx, blacklistKeyPrefix+digest(token))
	if err != nil {
		return false, nil // fail safe: treat store errors as not revoked
	}
	return data != nil, nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
