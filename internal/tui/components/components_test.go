package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleItems() []domain.MediaItem {
	return []domain.MediaItem{
		{ID: 1, Kind: domain.KindMovie, Title: "The Matrix"},
		{ID: 2, Kind: domain.KindMovie, Title: "Alien"},
		{ID: 3, Kind: domain.KindTV, Title: "Mr. Robot"},
	}
}

func TestMediaList_Navigation(t *testing.T) {
	l := NewMediaList()
	l.SetItems(sampleItems(), nil)

	item, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, item.ID)

	l, _ = l.Update(runes("j"))
	l, _ = l.Update(runes("j"))
	l, _ = l.Update(runes("j"))
	item, _ = l.Selected()
	assert.Equal(t, 3, item.ID, "cursor stops at the last item")

	l, _ = l.Update(runes("g"))
	item, _ = l.Selected()
	assert.Equal(t, 1, item.ID)
}

func TestMediaList_Filter(t *testing.T) {
	l := NewMediaList()
	l.SetItems(sampleItems(), nil)

	l.StartFilter()
	require.True(t, l.Filtering())
	for _, r := range "rob" {
		l, _ = l.Update(runes(string(r)))
	}

	visible := l.Visible()
	require.NotEmpty(t, visible)
	assert.Equal(t, "Mr. Robot", visible[0].Title)
	assert.Equal(t, "rob", l.FilterQuery())

	// Accept keeps the filter but leaves input mode
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, l.Filtering())
	assert.Len(t, l.Visible(), len(visible))

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, l.Visible(), 3)
}

func TestMediaList_EmptyStates(t *testing.T) {
	l := NewMediaList()
	assert.Contains(t, l.View(), "No items")

	l.SetItems(sampleItems(), nil)
	l.SetFilter("zzzz")
	assert.Equal(t, 0, l.Len())
	assert.Contains(t, l.View(), "No matches")
}

func TestMediaList_Headings(t *testing.T) {
	l := NewMediaList()
	l.SetItems(sampleItems(), map[domain.MediaKind]string{
		domain.KindMovie: "Trending Movies",
		domain.KindTV:    "Trending TV",
	})
	view := l.View()
	assert.Contains(t, view, "Trending Movies")
	assert.Contains(t, view, "Trending TV")
}

func TestPalette_RanksTitles(t *testing.T) {
	p := NewPalette()
	p.Show(nav.Destinations(true))
	require.True(t, p.IsVisible())
	assert.Len(t, p.Matches(), 4)

	for _, r := range "mov" {
		p, _, _ = p.Update(runes(string(r)))
	}
	require.NotEmpty(t, p.Matches())
	assert.Equal(t, nav.Movies, p.Matches()[0])

	var chosen *nav.Route
	p, _, chosen = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, chosen)
	assert.Equal(t, nav.Movies, *chosen)
	assert.False(t, p.IsVisible())
}

func TestPalette_LiteralPath(t *testing.T) {
	p := NewPalette()
	p.Show(nav.Destinations(true))
	for _, r := range "/tvdetails/1399" {
		p, _, _ = p.Update(runes(string(r)))
	}
	require.Len(t, p.Matches(), 1)
	assert.Equal(t, nav.Route{Page: nav.PageTVDetails, Param: "1399"}, p.Matches()[0])
}

func TestPalette_EscapeCloses(t *testing.T) {
	p := NewPalette()
	p.Show(nav.Destinations(false))
	p, _, chosen := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, chosen)
	assert.False(t, p.IsVisible())
}

func TestAuthForm_SubmitOnLastField(t *testing.T) {
	f := NewAuthForm("Login", LoginFields())

	for _, r := range " ada@example.com " {
		f, _, _ = f.Update(runes(string(r)))
	}
	var submitted bool
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted, "enter on the first field advances")

	for _, r := range " pw " {
		f, _, _ = f.Update(runes(string(r)))
	}
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)

	assert.Equal(t, "ada@example.com", f.Value("email"))
	assert.Equal(t, " pw ", f.Value("password"), "passwords are not trimmed")
	assert.NotContains(t, f.View(), "pw")
}

func TestAuthForm_Errors(t *testing.T) {
	f := NewAuthForm("Register", RegisterFields())

	errs := map[string]string{"first_name": "First Name is not allowed to be empty"}
	f.SetErrors(errs)
	errs["first_name"] = "mutated"
	assert.Equal(t, "First Name is not allowed to be empty", f.FieldError("first_name"))
	assert.Contains(t, f.View(), "First Name is not allowed to be empty")

	// Editing the field clears its message
	f, _, _ = f.Update(runes("A"))
	assert.Empty(t, f.FieldError("first_name"))

	f.SetFormError("Email already in use.")
	f.SetBusy(true)
	_, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted)

	f.Reset()
	assert.Empty(t, f.FormError())
	assert.Empty(t, f.Value("first_name"))
	assert.False(t, f.Busy())
}
