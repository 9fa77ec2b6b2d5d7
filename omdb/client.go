package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/reelsearch/movie"
)

const (
	// ProviderName identifies OMDb results
	ProviderName = "omdb"
	// DefaultBaseURL is the public OMDb endpoint
	DefaultBaseURL = "https://www.omdbapi.com/"

	fallbackMessage = "No movies found"
	requestMessage  = "Failed to fetch from OMDb"
)

// Client searches the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ movie.Searcher = (*Client)(nil)

// NewClient creates a new OMDb client. An empty API key is accepted;
// OMDb rejects such requests and the rejection is reported by Search.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("provider", ProviderName).Logger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if _, err := url.Parse(client.baseURL); err != nil {
		return nil, fmt.Errorf("invalid OMDb URL %q: %w", client.baseURL, err)
	}

	return client, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return ProviderName
}

// Search performs a title search. Pages start at 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*movie.Page, error) {
	if movie.IsBlank(query) {
		return movie.EmptyPage(), nil
	}
	if page < 1 {
		page = 1
	}

	requestURL, err := c.searchURL(query, page)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, 0, err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Msg("Searching OMDb")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	var result SearchResponse
	decodeErr := json.Unmarshal(body, &result)

	// OMDb reports bad keys and unknown titles in the payload, sometimes
	// alongside a 401, so a parsable failure payload wins over the status.
	if decodeErr == nil && result.Failed() {
		message := result.Error
		if message == "" {
			message = fallbackMessage
		}
		c.logger.Debug().
			Str("query", query).
			Int("status", resp.StatusCode).
			Str("error", message).
			Msg("OMDb returned failure response")
		return nil, movie.APIFailure(ProviderName, message, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, movie.RequestFailed(ProviderName, requestMessage, resp.StatusCode,
			fmt.Errorf("API request failed with status %d", resp.StatusCode))
	}

	if decodeErr != nil {
		return nil, movie.RequestFailed(ProviderName, requestMessage, resp.StatusCode,
			fmt.Errorf("failed to parse response: %w", decodeErr))
	}

	out := result.toPage(page)

	c.logger.Debug().
		Str("query", query).
		Int("count", len(out.Movies)).
		Int("total", out.TotalResults).
		Msg("OMDb search completed")

	return out, nil
}

// searchURL builds the request URL for a title search
func (c *Client) searchURL(query string, page int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	params := u.Query()
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}
