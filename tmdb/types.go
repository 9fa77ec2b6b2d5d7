package tmdb

import (
	"strconv"

	"github.com/s0up4200/reelsearch/movie"
)

// SearchMovieResponse is the body of /search/movie
type SearchMovieResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Result is a single movie in a search response
type Result struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// Year returns the release year, or an empty string
func (r Result) Year() string {
	if len(r.ReleaseDate) < 4 {
		return ""
	}
	return r.ReleaseDate[:4]
}

// ToMovie converts a TMDB result to the normalized movie record
func (r Result) ToMovie(imageBaseURL string) movie.Movie {
	m := movie.Movie{
		ID:          strconv.FormatInt(r.ID, 10),
		Title:       r.Title,
		Year:        r.Year(),
		ReleaseDate: r.ReleaseDate,
		Rating:      r.VoteAverage,
		HasRating:   r.VoteAverage > 0,
		TMDBID:      r.ID,
		Source:      ProviderName,
	}
	if r.PosterPath != nil && *r.PosterPath != "" {
		m.PosterURL = imageBaseURL + *r.PosterPath
	}
	return m
}

// toPage converts a response to a movie.Page, applying the defaults for
// missing fields
func (r *SearchMovieResponse) toPage(page int, imageBaseURL string) *movie.Page {
	movies := make([]movie.Movie, 0, len(r.Results))
	for _, res := range r.Results {
		movies = append(movies, res.ToMovie(imageBaseURL))
	}

	totalPages := r.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}
	if r.Page > 0 {
		page = r.Page
	}

	return &movie.Page{
		Movies:       movies,
		Page:         page,
		TotalPages:   totalPages,
		TotalResults: r.TotalResults,
	}
}
