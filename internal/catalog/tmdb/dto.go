package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// mediaDTO covers the movie, tv and person shapes. Fields absent for a kind
// stay zero; null image paths decode to "".
type mediaDTO struct {
	ID               int            `json:"id"`
	MediaType        string         `json:"media_type"`
	Title            string         `json:"title"`
	Name             string         `json:"name"`
	Tagline          string         `json:"tagline"`
	Overview         string         `json:"overview"`
	PosterPath       string         `json:"poster_path"`
	ProfilePath      string         `json:"profile_path"`
	BackdropPath     string         `json:"backdrop_path"`
	VoteAverage      float64        `json:"vote_average"`
	VoteCount        int            `json:"vote_count"`
	Genres           []domain.Genre `json:"genres"`
	GenreIDs         []int          `json:"genre_ids"`
	ReleaseDate      string         `json:"release_date"`
	FirstAirDate     string         `json:"first_air_date"`
	NumberOfSeasons  int            `json:"number_of_seasons"`
	NumberOfEpisodes int            `json:"number_of_episodes"`
	KnownForDept     string         `json:"known_for_department"`
}

// pagedResponse is the envelope for trending, list, search and watchlist endpoints
type pagedResponse struct {
	Page         int        `json:"page"`
	Results      []mediaDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// watchlistRequest is the POST /account/{id}/watchlist body
type watchlistRequest struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Watchlist bool   `json:"watchlist"`
}

// statusResponse is returned by mutations and by most error responses
type statusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
