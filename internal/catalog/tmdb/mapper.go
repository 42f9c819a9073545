package tmdb

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// mapMedia converts a DTO into a domain record.
// fallback is used when the payload carries no media_type (lists, details).
func mapMedia(d mediaDTO, fallback domain.MediaKind) domain.MediaItem {
	kind, ok := domain.ParseMediaKind(d.MediaType)
	if !ok {
		kind = fallback
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}

	released := d.ReleaseDate
	if released == "" {
		released = d.FirstAirDate
	}

	return domain.MediaItem{
		ID:           d.ID,
		Kind:         kind,
		Title:        title,
		Tagline:      d.Tagline,
		Overview:     d.Overview,
		PosterPath:   d.PosterPath,
		ProfilePath:  d.ProfilePath,
		BackdropPath: d.BackdropPath,
		Rating:       d.VoteAverage,
		VoteCount:    d.VoteCount,
		Genres:       d.Genres,
		GenreIDs:     d.GenreIDs,
		ReleaseDate:  released,
		SeasonCount:  d.NumberOfSeasons,
		EpisodeCount: d.NumberOfEpisodes,
		Department:   d.KnownForDept,
	}
}

// mapMediaList converts a batch of DTOs
func mapMediaList(dtos []mediaDTO, fallback domain.MediaKind) []domain.MediaItem {
	items := make([]domain.MediaItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, mapMedia(d, fallback))
	}
	return items
}

// mapPage converts a paged envelope
func mapPage(resp pagedResponse, fallback domain.MediaKind) *domain.Page {
	return &domain.Page{
		Results:      mapMediaList(resp.Results, fallback),
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
}

// watchlistSegment maps a kind onto the watchlist path segment
func watchlistSegment(kind domain.MediaKind) string {
	if kind == domain.KindMovie {
		return "movies"
	}
	return string(kind)
}

// ImageURL joins an image base, size and path. Empty path yields "".
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}
