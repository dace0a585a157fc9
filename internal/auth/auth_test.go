package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour, "project-review")
	require.NoError(t, err)
	userID := uuid.New()

	token, issued, err := m.Issue(userID, "ada@example.com")
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, issued.TokenID, got.TokenID)
	assert.WithinDuration(t, issued.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m, err := NewTokenManager("secret", time.Minute, "")
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := m.Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenManager("one", time.Hour, "")
	b, _ := NewTokenManager("two", time.Hour, "")
	token, _, err := a.Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = b.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = b.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, "")
	assert.Error(t, err)
	assert.Len(t, RandomSecret(), 64)
}

func TestRequestContext(t *testing.T) {
	anon := Anonymous()
	assert.False(t, anon.Authenticated())
	_, ok := anon.UserID()
	assert.False(t, ok)

	id := uuid.New()
	rc := For(Identity{UserID: id})
	assert.True(t, rc.Authenticated())
	got, ok := rc.UserID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestRedisRevocationStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok", time.Now().Add(time.Minute)))
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore_PastExpiryIsNoop(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisRevocationStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, store.Revoke(context.Background(), "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists("auth:revoked:old"))
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok", now.Add(time.Minute)))
	revoked, _ := store.IsRevoked(ctx, "tok")
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "tok")
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "other", now.Add(time.Minute)))
	assert.NotContains(t, store.entries, "tok")
}
