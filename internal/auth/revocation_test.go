package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashTokenDeterministic(t *testing.T) {
	h1 := hashToken("eyJhbGci.token.one")
	h2 := hashToken("eyJhbGci.token.one")
	h3 := hashToken("eyJhbGci.token.two")

	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.Len(t, h1, 64, "sha256 hex digest")
	require.NotContains(t, blacklistKey("raw"), "raw", "raw token never appears in keys")
}

func TestMemoryStoreRevokeToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	require.False(t, store.IsRevoked(ctx, "tok"))

	require.NoError(t, store.RevokeToken(ctx, "tok", time.Minute))
	require.True(t, store.IsRevoked(ctx, "tok"))
	require.False(t, store.IsRevoked(ctx, "other"))

	// revoking again is a harmless overwrite
	require.NoError(t, store.RevokeToken(ctx, "tok", time.Minute))
	require.True(t, store.IsRevoked(ctx, "tok"))
}

func TestMemoryStoreRevokeExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	require.NoError(t, store.RevokeToken(ctx, "expired", 0))
	require.NoError(t, store.RevokeToken(ctx, "expired", -time.Minute))
	require.False(t, store.IsRevoked(ctx, "expired"))
}

func TestMemoryStoreEntriesExpire(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	require.NoError(t, store.RevokeToken(ctx, "tok", 30*time.Second))
	require.True(t, store.IsRevoked(ctx, "tok"))

	current = time.Unix(1031, 0)
	require.False(t, store.IsRevoked(ctx, "tok"), "record self-expires with the token")
}

func TestMemoryStoreLogoutAllCutoff(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	current := time.Unix(200, 0)
	store.now = func() time.Time { return current }

	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(100, 0)))

	require.NoError(t, store.RevokeAllForUser(ctx, 7, 30*time.Minute))

	require.True(t, store.IsLoggedOutSince(ctx, 7, time.Unix(100, 0)), "issued before cutoff")
	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(250, 0)), "issued after cutoff")
	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(200, 0)), "cutoff is strictly greater")
	require.False(t, store.IsLoggedOutSince(ctx, 8, time.Unix(100, 0)), "other users unaffected")
}

func TestMemoryStoreCutoffSubSecondPrecision(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	// cutoff at 200.9s must invalidate a token issued at 200.1s even though
	// both fall in the same wall-clock second
	current := time.Unix(200, 900*int64(time.Millisecond))
	store.now = func() time.Time { return current }

	require.NoError(t, store.RevokeAllForUser(ctx, 7, 30*time.Minute))

	require.True(t, store.IsLoggedOutSince(ctx, 7, time.Unix(200, 100*int64(time.Millisecond))))
	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(200, 900*int64(time.Millisecond))), "equal instants are not invalidated")
	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(201, 0)))
}

func TestMemoryStoreCutoffExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	current := time.Unix(200, 0)
	store.now = func() time.Time { return current }

	require.NoError(t, store.RevokeAllForUser(ctx, 7, 30*time.Minute))
	require.True(t, store.IsLoggedOutSince(ctx, 7, time.Unix(100, 0)))

	// once the access window elapses, every predating token is expired anyway
	current = time.Unix(200, 0).Add(31 * time.Minute)
	require.False(t, store.IsLoggedOutSince(ctx, 7, time.Unix(100, 0)))
}

func TestMemoryStoreCutoffOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	current := time.Unix(200, 0)
	store.now = func() time.Time { return current }
	require.NoError(t, store.RevokeAllForUser(ctx, 7, 30*time.Minute))

	current = time.Unix(300, 0)
	require.NoError(t, store.RevokeAllForUser(ctx, 7, 30*time.Minute))

	require.True(t, store.IsLoggedOutSince(ctx, 7, time.Unix(250, 0)), "cutoff moved forward")
}
