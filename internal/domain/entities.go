package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaKind distinguishes catalog record types
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindTV     MediaKind = "tv"
	KindPerson MediaKind = "person"
)

// ParseMediaKind converts an upstream media_type string into a MediaKind
func ParseMediaKind(s string) (MediaKind, bool) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMovie:
		return KindMovie, true
	case KindTV:
		return KindTV, true
	case KindPerson:
		return KindPerson, true
	default:
		return "", false
	}
}

// Label returns a human-readable name for the kind
func (k MediaKind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindTV:
		return "TV Show"
	case KindPerson:
		return "Person"
	default:
		return "Unknown"
	}
}

// Genre is a catalog genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MediaItem is a movie, TV show or person record as returned by the catalog.
// Identity is only unique within one response batch.
type MediaItem struct {
	ID       int       // Upstream identifier
	Kind     MediaKind // movie, tv or person
	Title    string    // title (movies) or name (tv, people)
	Tagline  string
	Overview string

	// Image paths relative to the image base URL (empty when absent)
	PosterPath   string
	ProfilePath  string
	BackdropPath string

	// Rating (0-10 scale, community vote average)
	Rating    float64
	VoteCount int

	Genres   []Genre
	GenreIDs []int

	// ReleaseDate is release_date for movies, first_air_date for TV
	ReleaseDate string

	// TV-specific
	SeasonCount  int
	EpisodeCount int

	// Person-specific
	Department string
}

// ImagePath returns the poster path, falling back to the profile path
func (m MediaItem) ImagePath() string {
	if m.PosterPath != "" {
		return m.PosterPath
	}
	return m.ProfilePath
}

// HasImage reports whether the item carries a displayable image
func (m MediaItem) HasImage() bool {
	return m.ImagePath() != ""
}

// IDString returns the identifier as used in routes
func (m MediaItem) IDString() string {
	return strconv.Itoa(m.ID)
}

// FormattedRating returns the rating with one decimal place
func (m MediaItem) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.Rating)
}

// Year returns the year portion of ReleaseDate, or 0 if unknown
func (m MediaItem) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// GenreNames returns the genre names in upstream order
func (m MediaItem) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Description returns secondary info for list rendering
func (m MediaItem) Description() string {
	switch m.Kind {
	case KindPerson:
		if m.Department != "" {
			return m.Department
		}
		return m.Kind.Label()
	case KindTV:
		if m.SeasonCount == 1 {
			return "1 Season"
		}
		if m.SeasonCount > 1 {
			return fmt.Sprintf("%d Seasons", m.SeasonCount)
		}
	}
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return m.Kind.Label()
}

// Page is one page of a paged catalog list
type Page struct {
	Results      []MediaItem
	Page         int
	TotalPages   int
	TotalResults int
}

// HasNext reports whether a later page exists
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists
func (p Page) HasPrev() bool {
	return p.Page > 1
}

// ListType names a curated catalog list
type ListType string

const (
	ListPopular     ListType = "popular"
	ListTopRated    ListType = "top_rated"
	ListNowPlaying  ListType = "now_playing" // movies only
	ListUpcoming    ListType = "upcoming"    // movies only
	ListAiringToday ListType = "airing_today"
	ListOnTheAir    ListType = "on_the_air"
)

// SupportsList reports whether the catalog serves the list for this kind
func (k MediaKind) SupportsList(lt ListType) bool {
	switch lt {
	case ListPopular, ListTopRated:
		return k == KindMovie || k == KindTV
	case ListNowPlaying, ListUpcoming:
		return k == KindMovie
	case ListAiringToday, ListOnTheAir:
		return k == KindTV
	default:
		return false
	}
}
