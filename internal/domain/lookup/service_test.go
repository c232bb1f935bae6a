package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOpensSession(t *testing.T) {
	svc := NewService(NewSimulatedResolver(0), NewMemoryStore(), time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	res, err := svc.Search(ctx, userID, "  Rue du Rhône 12,  Genève ")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Len(t, res.ParcelNumber, 5)

	ok, err := svc.WasSearched(ctx, userID, "rue du rhône 12, genève")
	require.NoError(t, err)
	assert.True(t, ok, "normalized address should match the session")

	ok, err = svc.WasSearched(ctx, uuid.New(), "Rue du Rhône 12, Genève")
	require.NoError(t, err)
	assert.False(t, ok, "sessions are per user")
}

func TestSearchRejectsBlankAddress(t *testing.T) {
	svc := NewService(NewSimulatedResolver(0), NewMemoryStore(), time.Minute)
	_, err := svc.Search(context.Background(), uuid.New(), "   ")
	assert.True(t, errors.Is(err, ErrEmptyAddress))
}

func TestSimulatedResolverIsDeterministic(t *testing.T) {
	r := NewSimulatedResolver(0)
	a, err := r.Resolve(context.Background(), "Bahnhofstrasse 1, Zürich")
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), "bahnhofstrasse 1,  zürich")
	require.NoError(t, err)
	assert.Equal(t, a.ParcelNumber, b.ParcelNumber)
	assert.Equal(t, a.SurfaceM2, b.SurfaceM2)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Mark(context.Background(), "k", time.Minute))
	ok, _ := store.Exists(context.Background(), "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = store.Exists(context.Background(), "k")
	assert.False(t, ok)
}

func TestMemoryStoreMarkSweepsExpiredKeys(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Mark(ctx, k, time.Second))
	}
	require.NoError(t, store.Mark(ctx, "long", time.Hour))

	now = now.Add(2 * memorySweepInterval)
	require.NoError(t, store.Mark(ctx, "d", time.Second))

	assert.Len(t, store.expires, 2)
	ok, _ := store.Exists(ctx, "long")
	assert.True(t, ok)
}
