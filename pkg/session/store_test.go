package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRevokeUntilExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, store.Revoke(ctx, "jti-short", 20*time.Millisecond))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Eventually(t, func() bool {
		revoked, err := store.IsRevoked(ctx, "jti-short")
		return err == nil && !revoked
	}, time.Second, 10*time.Millisecond)

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStoreIgnoresExpiredTokens(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "old", 0))
	require.NoError(t, store.Revoke(ctx, "older", -time.Second))

	revoked, err := store.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Zero(t, store.revoked.ItemCount())
}

func TestRedisStoreKeyLayout(t *testing.T) {
	store := NewRedisStore(&Config{Host: "localhost", Port: 6379})
	defer store.Close()

	assert.Equal(t, "propman:session:revoked:abc", store.revokedKey("abc"))
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
