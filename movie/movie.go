package movie

import (
	"context"
	"fmt"
	"strings"
)

// PlaceholderPoster is shown for results without a poster
const PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"

// Movie is a single search result, independent of the provider that produced it
type Movie struct {
	ID          string
	Title       string
	Year        string
	ReleaseDate string
	PosterURL   string
	Rating      float64
	HasRating   bool
	IMDBID      string
	TMDBID      int64
	Source      string
	// Set by library annotation
	InLibrary bool
}

// Page is one page of search results
type Page struct {
	Movies       []Movie
	Page         int
	TotalPages   int
	TotalResults int
}

// Searcher is implemented by every movie metadata provider
type Searcher interface {
	// Search runs a single search request. Blank queries return an empty page
	// without touching the network.
	Search(ctx context.Context, query string, page int) (*Page, error)

	// Name returns the provider name used in logs and output
	Name() string
}

// EmptyPage returns a page with no results
func EmptyPage() *Page {
	return &Page{Movies: []Movie{}}
}

// IsBlank reports whether a query is empty or whitespace only
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// HasPoster reports whether the provider supplied a usable poster
func (m Movie) HasPoster() bool {
	p := strings.TrimSpace(m.PosterURL)
	return p != "" && p != "N/A"
}

// Poster returns the poster URL or the placeholder
func (m Movie) Poster() string {
	if !m.HasPoster() {
		return PlaceholderPoster
	}
	return m.PosterURL
}

// Subtitle returns the year and rating line shown under the title
func (m Movie) Subtitle() string {
	var parts []string
	if m.Year != "" {
		parts = append(parts, m.Year)
	}
	if m.HasRating {
		parts = append(parts, fmt.Sprintf("★ %.1f", m.Rating))
	}
	return strings.Join(parts, " · ")
}

// YearNumber returns the first four digits of Year, or 0
func (m Movie) YearNumber() int {
	if len(m.Year) < 4 {
		return 0
	}
	year := 0
	for _, r := range m.Year[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// Key returns the identity used to de-duplicate results across providers
func (m Movie) Key() string {
	if m.IMDBID != "" {
		return "imdb:" + m.IMDBID
	}
	return "title:" + strings.ToLower(strings.TrimSpace(m.Title)) + ":" + m.Year
}
