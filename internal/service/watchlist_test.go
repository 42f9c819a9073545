package service

import (
	"context"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlist_ToggleRefetches(t *testing.T) {
	repo := &fakeWatchlist{items: []domain.MediaItem{{ID: 550, Kind: domain.KindMovie}}}
	svc := NewWatchlistService(repo, "42", log.NullLogger())
	ctx := context.Background()

	require.Len(t, svc.Get(ctx, domain.KindMovie), 1)
	assert.False(t, svc.Contains(domain.KindMovie, 680))

	assert.True(t, svc.Toggle(ctx, domain.KindMovie, 680, true))
	assert.Equal(t, "42", repo.lastSet.accountID)
	assert.Equal(t, 2, repo.fetches)
	assert.True(t, svc.Contains(domain.KindMovie, 680))
}

func TestWatchlist_Failures(t *testing.T) {
	repo := &fakeWatchlist{setErr: domain.ErrAuthFailed}
	svc := NewWatchlistService(repo, "42", log.NullLogger())
	assert.False(t, svc.Toggle(context.Background(), domain.KindTV, 1399, true))
	assert.Zero(t, repo.fetches)

	unconfigured := NewWatchlistService(&fakeWatchlist{}, "", log.NullLogger())
	assert.False(t, unconfigured.Configured())
	assert.Empty(t, unconfigured.Get(context.Background(), domain.KindMovie))
	assert.False(t, unconfigured.Toggle(context.Background(), domain.KindMovie, 550, true))
}
