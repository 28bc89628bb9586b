package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"taskstream/pkg/logger"
)

// TokenDenylist holds revoked session tokens until they would have expired
// anyway. Sign-out revokes; the auth middleware checks. Tokens are stored
// hashed so the denylist never contains usable credentials.
type TokenDenylist struct {
	client *Client
}

func NewTokenDenylist(client *Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token invalid for its remaining lifetime.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if d == nil || d.client == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return d.client.Set(ctx, d.key(token), "revoked", ttl)
}

// IsRevoked reports whether the token has been signed out. Redis failures
// fail open: the token's own expiry still bounds the session.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) bool {
	if d == nil || d.client == nil {
		return false
	}

	revoked, err := d.client.Exists(ctx, d.key(token))
	if err != nil {
		logger.Warn("Denylist check failed", "error", err)
		return false
	}
	return revoked
}

func (d *TokenDenylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:revoked:" + hex.EncodeToString(sum[:])
}
