package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemorySessionStore()
	s.now = func() time.Time { return now }

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Save(ctx, 1, "sess-a", time.Hour))
	id, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sess-a", id)

	require.NoError(t, s.Save(ctx, 1, "sess-b", time.Hour))
	id, _ = s.Get(ctx, 1)
	assert.Equal(t, "sess-b", id)

	now = now.Add(2 * time.Hour)
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Save(ctx, 2, "sess-c", time.Hour))
	require.NoError(t, s.Delete(ctx, 2))
	_, err = s.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRankingCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryRankingCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ranking := []StoreRanking{{ID: 2, Sales: 500}, {ID: 1, Sales: 100}}
	require.NoError(t, c.Set(ctx, ranking))
	ranking[0].Sales = 0

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(500), got[0].Sales)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, ranking))
	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}
