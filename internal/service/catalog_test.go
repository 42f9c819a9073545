package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrending_Truncates(t *testing.T) {
	repo := &fakeCatalog{trending: makeItems(20, domain.KindMovie)}
	svc := NewCatalogService(repo, log.NullLogger())

	items := svc.Trending(context.Background(), domain.KindMovie)
	assert.Len(t, items, TrendingLimit)
	assert.Equal(t, 1, items[0].ID)
}

func TestTrending_FailureIsEmpty(t *testing.T) {
	repo := &fakeCatalog{err: domain.ErrServerOffline}
	svc := NewCatalogService(repo, log.NullLogger())

	assert.Empty(t, svc.Trending(context.Background(), domain.KindTV))
}

func TestList_FailureIsEmptyPage(t *testing.T) {
	repo := &fakeCatalog{err: fmt.Errorf("%w: 500", domain.ErrUnexpectedStatus)}
	svc := NewCatalogService(repo, log.NullLogger())

	page := svc.List(context.Background(), domain.KindMovie, domain.ListPopular, 0)
	require.NotNil(t, page)
	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.Page)
	assert.False(t, page.HasNext())
}

func TestDetails_RecordOrNil(t *testing.T) {
	repo := &fakeCatalog{details: map[string]*domain.MediaItem{
		"550": {ID: 550, Kind: domain.KindMovie, Title: "Fight Club"},
		"13":  {ID: 14, Kind: domain.KindMovie, Title: "American Beauty"},
	}}
	svc := NewCatalogService(repo, log.NullLogger())
	ctx := context.Background()

	item := svc.Details(ctx, domain.KindMovie, "550")
	require.NotNil(t, item)
	assert.Equal(t, 550, item.ID)

	assert.Nil(t, svc.Details(ctx, domain.KindMovie, "404"))
	assert.Nil(t, svc.Details(ctx, domain.KindMovie, "13"), "mismatched id counts as missing")
	assert.Equal(t, 3, repo.Calls())

	for _, id := range []string{"", "  ", "abc", "-1"} {
		assert.Nil(t, svc.Details(ctx, domain.KindTV, id))
	}
	assert.Equal(t, 3, repo.Calls(), "invalid ids never reach the repository")
}

func TestSearch_BlankQuerySkipsNetwork(t *testing.T) {
	repo := &fakeCatalog{search: makeItems(3, domain.KindMovie)}
	svc := NewCatalogService(repo, log.NullLogger())

	for _, q := range []string{"", " ", "\t\n"} {
		assert.Empty(t, svc.Search(context.Background(), q))
	}
	assert.Zero(t, repo.Calls())
}

func TestSearch_KeepsOnlyItemsWithImages(t *testing.T) {
	repo := &fakeCatalog{search: []domain.MediaItem{
		{ID: 268, Kind: domain.KindMovie, Title: "Batman", PosterPath: "/b.jpg"},
		{ID: 1, Kind: domain.KindMovie, Title: "Batman: no poster"},
		{ID: 2, Kind: domain.KindPerson, Title: "Adam West", ProfilePath: "/w.jpg"},
		{ID: 3, Kind: domain.KindTV, Title: "Batman", PosterPath: "/tv.jpg"},
	}}
	svc := NewCatalogService(repo, log.NullLogger())

	items := svc.Search(context.Background(), "  batman ")
	assert.Equal(t, "batman", repo.lastQuery)
	require.Len(t, items, 3)
	assert.Equal(t, []int{268, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
	for _, item := range items {
		assert.True(t, item.HasImage())
	}
}

func TestCatalog_MissingCredentialsSkipsNetwork(t *testing.T) {
	repo := &fakeCatalog{noCredentials: true, trending: makeItems(2, domain.KindMovie)}
	svc := NewCatalogService(repo, log.NullLogger())
	ctx := context.Background()

	assert.Empty(t, svc.Trending(ctx, domain.KindMovie))
	assert.Empty(t, svc.Search(ctx, "batman"))
	assert.Nil(t, svc.Details(ctx, domain.KindMovie, "550"))
	assert.Empty(t, svc.List(ctx, domain.KindTV, domain.ListPopular, 1).Results)
	assert.Zero(t, repo.Calls())
}
