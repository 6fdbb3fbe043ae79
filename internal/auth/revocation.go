package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	blacklistKeyPrefix  = "blacklist:"
	userLogoutKeyPrefix = "user_logout:"
)

// RevocationStore records revoked tokens and per-user logout-all cutoffs in
// an expiring key-value store. Records never outlive the token they target:
// TTLs are derived from the token's remaining validity, so the store stays
// bounded to recently revoked tokens.
type RevocationStore interface {
	// RevokeToken blacklists a single token for the rest of its lifetime.
	// A non-positive ttl means the token is already expired; the call is a
	// successful no-op.
	RevokeToken(ctx context.Context, rawToken string, ttl time.Duration) error

	// IsRevoked reports whether the token was blacklisted. On store
	// unavailability it fails closed and reports true.
	IsRevoked(ctx context.Context, rawToken string) bool

	// RevokeAllForUser records "now" as the user's logout-all cutoff.
	// Tokens issued before the cutoff become invalid.
	RevokeAllForUser(ctx context.Context, userID int64, ttl time.Duration) error

	// IsLoggedOutSince reports whether a logout-all cutoff strictly newer
	// than issuedAt exists for the user. On store unavailability it fails
	// open and reports false.
	IsLoggedOutSince(ctx context.Context, userID int64, issuedAt time.Time) bool
}

// hashToken fingerprints the raw token so the store never retains token
// material at rest.
func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func blacklistKey(rawToken string) string {
	return blacklistKeyPrefix + hashToken(rawToken)
}

func userLogoutKey(userID int64) string {
	return fmt.Sprintf("%s%d", userLogoutKeyPrefix, userID)
}
