package radarr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/s0up4200/reelsearch/movie"
)

// DefaultCacheTTL is how long a loaded library index is reused
const DefaultCacheTTL = 5 * time.Minute

// Client wraps the starr Radarr client and keeps a cached library index
type Client struct {
	client   RadarrAPI
	logger   zerolog.Logger
	cacheTTL time.Duration
	now      func() time.Time

	mu       sync.Mutex
	library  *Library
	loadedAt time.Time
}

// Library indexes the movies in Radarr by their external ids
type Library struct {
	byIMDB map[string]*radarr.Movie
	byTMDB map[int64]*radarr.Movie
}

// NewClient creates a new Radarr client and checks the connection
func NewClient(url, apiKey string, cacheTTL time.Duration, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, 30*time.Second)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	c := NewClientWithAPI(radarrClient, logger)
	if cacheTTL > 0 {
		c.cacheTTL = cacheTTL
	}
	return c, nil
}

// NewClientWithAPI creates a client around an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		client:   api,
		logger:   logger.With().Str("component", "radarr").Logger(),
		cacheTTL: DefaultCacheTTL,
		now:      time.Now,
	}
}

// Ping checks that Radarr is reachable
func (c *Client) Ping() error {
	if err := c.client.Ping(); err != nil {
		return fmt.Errorf("failed to connect to Radarr: %w", err)
	}
	return nil
}

// Library returns the library index, loading it when the cache has expired
func (c *Client) Library(ctx context.Context) (*Library, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.library != nil && c.now().Sub(c.loadedAt) < c.cacheTTL {
		return c.library, nil
	}

	movies, err := c.client.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	c.library = newLibrary(movies)
	c.loadedAt = c.now()
	c.logger.Debug().Msgf("Retrieved %d movies from Radarr", len(movies))
	return c.library, nil
}

// Annotate returns a copy of movies with InLibrary set. Library failures are
// logged and the input is returned unchanged.
func (c *Client) Annotate(ctx context.Context, movies []movie.Movie) []movie.Movie {
	if len(movies) == 0 {
		return movies
	}

	lib, err := c.Library(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Library annotation skipped")
		return movies
	}

	out := make([]movie.Movie, len(movies))
	for i, m := range movies {
		m.InLibrary = lib.Contains(m)
		out[i] = m
	}
	return out
}

func newLibrary(movies []*radarr.Movie) *Library {
	lib := &Library{
		byIMDB: make(map[string]*radarr.Movie, len(movies)),
		byTMDB: make(map[int64]*radarr.Movie, len(movies)),
	}
	for _, m := range movies {
		if m == nil {
			continue
		}
		if m.ImdbID != "" {
			lib.byIMDB[m.ImdbID] = m
		}
		if m.TmdbID != 0 {
			lib.byTMDB[m.TmdbID] = m
		}
	}
	return lib
}

// Contains reports whether a search result is in the library
func (l *Library) Contains(m movie.Movie) bool {
	_, ok := l.Lookup(m)
	return ok
}

// Lookup returns the Radarr movie matching a search result
func (l *Library) Lookup(m movie.Movie) (*radarr.Movie, bool) {
	if m.IMDBID != "" {
		if rm, ok := l.byIMDB[m.IMDBID]; ok {
			return rm, true
		}
	}
	if m.TMDBID != 0 {
		if rm, ok := l.byTMDB[m.TMDBID]; ok {
			return rm, true
		}
	}
	return nil, false
}

// Size returns the number of indexed movies
func (l *Library) Size() int {
	seen := make(map[*radarr.Movie]struct{}, len(l.byIMDB))
	for _, m := range l.byIMDB {
		seen[m] = struct{}{}
	}
	for _, m := range l.byTMDB {
		seen[m] = struct{}{}
	}
	return len(seen)
}
