// Package tmdb provides a movie.Searcher backed by The Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/reelsearch/movie"
)

const (
	// ProviderName identifies TMDB results
	ProviderName = "tmdb"
	// DefaultBaseURL is the public TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL serves posters at w500
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	requestMessage = "Failed to fetch from TMDB"
)

// Client searches the TMDB catalog
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	logger       zerolog.Logger
}

var _ movie.Searcher = (*Client)(nil)

// NewClient creates a new TMDB client. An empty API key is accepted and
// results in TMDB rejecting the request.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:      DefaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		apiKey:       apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("provider", ProviderName).Logger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if _, err := url.Parse(client.baseURL); err != nil {
		return nil, fmt.Errorf("invalid TMDB URL %q: %w", client.baseURL, err)
	}

	return client, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return ProviderName
}

// Search queries /search/movie. Pages start at 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*movie.Page, error) {
	if movie.IsBlank(query) {
		return &movie.Page{Movies: []movie.Movie{}, TotalPages: 0}, nil
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	requestURL := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Msg("Searching TMDB")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, 0, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().
			Str("query", query).
			Int("status", resp.StatusCode).
			Msg("TMDB returned non-success status")
		return nil, movie.RequestFailed(ProviderName, requestMessage, resp.StatusCode,
			fmt.Errorf("TMDB API returned status %d", resp.StatusCode))
	}

	var result SearchMovieResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}

	out := result.toPage(page, c.imageBaseURL)

	c.logger.Debug().
		Str("query", query).
		Int("count", len(out.Movies)).
		Int("total_pages", out.TotalPages).
		Msg("TMDB search completed")

	return out, nil
}
