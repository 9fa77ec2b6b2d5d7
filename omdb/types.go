package omdb

import (
	"strconv"
	"strings"

	"github.com/s0up4200/reelsearch/movie"
)

// resultsPerPage is fixed by the OMDb API
const resultsPerPage = 10

// SearchResponse is the body returned for an "s=" title search
type SearchResponse struct {
	Response     string         `json:"Response"`
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Error        string         `json:"Error"`
}

// SearchResult is a single entry of the Search array
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Failed reports whether OMDb flagged the response as a failure
func (r *SearchResponse) Failed() bool {
	return strings.EqualFold(r.Response, "False")
}

// Total parses totalResults, returning 0 when absent or malformed
func (r *SearchResponse) Total() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.TotalResults))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ToMovie converts an OMDb entry to the normalized movie record
func (r SearchResult) ToMovie() movie.Movie {
	poster := r.Poster
	if poster == "N/A" {
		poster = ""
	}
	return movie.Movie{
		ID:        r.ImdbID,
		Title:     r.Title,
		Year:      r.Year,
		PosterURL: poster,
		IMDBID:    r.ImdbID,
		Source:    ProviderName,
	}
}

// toPage converts a successful response to a movie.Page
func (r *SearchResponse) toPage(page int) *movie.Page {
	movies := make([]movie.Movie, 0, len(r.Search))
	for _, res := range r.Search {
		movies = append(movies, res.ToMovie())
	}

	total := r.Total()
	pages := (total + resultsPerPage - 1) / resultsPerPage
	if pages == 0 && len(movies) > 0 {
		pages = 1
	}

	return &movie.Page{
		Movies:       movies,
		Page:         page,
		TotalPages:   pages,
		TotalResults: total,
	}
}
