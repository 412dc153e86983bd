package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_CreateAndResolve(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Create(42)
	require.NotEmpty(t, sess.Token)

	userID, ok := store.Resolve(sess.Token)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestStore_ResolveUnknownToken(t *testing.T) {
	store := NewStore(time.Hour)

	_, ok := store.Resolve("no-such-token")
	assert.False(t, ok)
}

func TestStore_ResolveExpired(t *testing.T) {
	store := NewStore(-time.Minute)

	sess := store.Create(7)
	_, ok := store.Resolve(sess.Token)
	assert.False(t, ok, "expired session must not resolve")

	// Expired entry is dropped on first resolve.
	store.mu.Lock()
	_, still := store.sessions[sess.Token]
	store.mu.Unlock()
	assert.False(t, still)
}

func TestStore_Revoke(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Create(1)
	store.Revoke(sess.Token)

	_, ok := store.Resolve(sess.Token)
	assert.False(t, ok)

	// Revoking again is harmless.
	store.Revoke(sess.Token)
}

func TestStore_TokensAreUnique(t *testing.T) {
	store := NewStore(time.Hour)

	a := store.Create(1)
	b := store.Create(1)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestStartCleaner_SweepsExpired(t *testing.T) {
	store := NewStore(-time.Minute)
	store.Create(1)
	store.Create(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartCleaner(ctx, store, 10*time.Millisecond, zap.NewNop())

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.sessions) == 0
	}, time.Second, 10*time.Millisecond)
}
