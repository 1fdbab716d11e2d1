package redis

import (
	"context"
	"testing"
	"time"

	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionRepository(client, time.Hour), mr
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := store.NewSession("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	sess.AppendTurn(store.RoleUser, "hello")
	sess.AppendTurn(store.RoleAssistant, "hi")
	sess.WriteSlot("billing_policies", "cached text")
	require.NoError(t, repo.Save(ctx, sess))

	got, err = repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Turns, 2)
	assert.Equal(t, "hello", got.Turns[0].Content)

	v, ok := got.CachedSlot("billing_policies")
	assert.True(t, ok)
	assert.Equal(t, "cached text", v)

	require.NoError(t, repo.Delete(ctx, sess.ID))
	got, err = repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepositoryTTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	sess := store.NewSession("3f2504e0-4f89-41d3-9a0c-0305e82c3302")
	require.NoError(t, repo.Save(ctx, sess))

	mr.FastForward(2 * time.Hour)

	got, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "session must expire after the TTL")
}

func TestSessionRepositoryUnavailable(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	mr.Close()

	_, err := repo.Get(ctx, "3f2504e0-4f89-41d3-9a0c-0305e82c3303")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnavailable))

	err = repo.Save(ctx, store.NewSession("3f2504e0-4f89-41d3-9a0c-0305e82c3303"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnavailable))
}
