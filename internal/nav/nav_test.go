package nav

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Root},
		{"", Root},
		{"/home", Home},
		{"/movies/", Movies},
		{"/tv", TV},
		{"/about", About},
		{"/login", Login},
		{"/register", Register},
		{"/moviedetails/550", Route{Page: PageMovieDetails, Param: "550"}},
		{"/tvdetails/1399", Route{Page: PageTVDetails, Param: "1399"}},
		{"/search/the%20dark%20knight", Route{Page: PageSearch, Param: "the dark knight"}},
		{"/moviedetails", Route{Page: PageNotFound, Param: "moviedetails"}},
		{"/moviedetails/1/2", Route{Page: PageNotFound, Param: "moviedetails/1/2"}},
		{"/nowhere", Route{Page: PageNotFound, Param: "nowhere"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.path))
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	for _, r := range []Route{
		Root, Home, Movies, TV, About, Login, Register,
		{Page: PageMovieDetails, Param: "550"},
		{Page: PageSearch, Param: "c/o 50%"},
	} {
		assert.Equal(t, r, Parse(r.Path()), r.Path())
	}
}

func TestSearchRoute(t *testing.T) {
	assert.Equal(t, Route{Page: PageSearch, Param: "batman"}, SearchRoute("  batman "))
	assert.Equal(t, Home, SearchRoute("   "))
}

func TestDetailRoute(t *testing.T) {
	r, ok := DetailRoute(domain.MediaItem{ID: 1399, Kind: domain.KindTV})
	require.True(t, ok)
	assert.Equal(t, "/tvdetails/1399", r.Path())

	_, ok = DetailRoute(domain.MediaItem{ID: 3894, Kind: domain.KindPerson})
	assert.False(t, ok)
}

func TestGuard(t *testing.T) {
	ada := &domain.SessionIdentity{UserID: "uid-1"}
	detail := Route{Page: PageMovieDetails, Param: "550"}

	assert.Equal(t, Redirect{Target: Login}, Guard(detail, domain.AuthAnonymous, nil))
	assert.Equal(t, Redirect{Target: Login}, Guard(Home, domain.AuthUnknown, nil))
	assert.Equal(t, Authorized{Identity: ada}, Guard(detail, domain.AuthAuthenticated, ada))

	assert.Equal(t, Authorized{}, Guard(Login, domain.AuthAnonymous, nil))
	assert.Equal(t, Redirect{Target: Home}, Guard(Login, domain.AuthAuthenticated, ada))
	assert.Equal(t, Redirect{Target: Home}, Guard(Register, domain.AuthAuthenticated, ada))
	assert.Equal(t, Redirect{Target: Home}, Guard(Root, domain.AuthAuthenticated, ada))

	notFound := Parse("/nowhere")
	assert.Equal(t, Authorized{}, Guard(notFound, domain.AuthAnonymous, nil))
	assert.Equal(t, Authorized{Identity: ada}, Guard(notFound, domain.AuthAuthenticated, ada))
}

func TestIntentFor(t *testing.T) {
	assert.Equal(t, &Intent{Target: Home, Replace: true}, IntentFor(Login, domain.AuthAuthenticated))
	assert.Equal(t, &Intent{Target: Home, Replace: true}, IntentFor(Root, domain.AuthAuthenticated))
	assert.Nil(t, IntentFor(Movies, domain.AuthAuthenticated))

	assert.Equal(t, &Intent{Target: Login}, IntentFor(About, domain.AuthAnonymous))
	assert.Nil(t, IntentFor(Register, domain.AuthAnonymous))
	assert.Nil(t, IntentFor(Home, domain.AuthUnknown))
}
