package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/reelsearch/config"
	"github.com/s0up4200/reelsearch/filter"
	"github.com/s0up4200/reelsearch/movie"
	"github.com/s0up4200/reelsearch/omdb"
	"github.com/s0up4200/reelsearch/radarr"
	"github.com/s0up4200/reelsearch/search"
	"github.com/s0up4200/reelsearch/tmdb"
)

// newSearchers creates one client per configured provider
func newSearchers(cfg *config.Config, logger zerolog.Logger) ([]movie.Searcher, error) {
	var searchers []movie.Searcher

	if cfg.UsesOMDb() {
		if cfg.OMDb.APIKey == "" {
			logger.Warn().Msg("omdb.api_key is not set, OMDb will reject requests")
		}
		client, err := omdb.NewClient(cfg.OMDb.APIKey, logger,
			omdb.WithBaseURL(cfg.OMDb.URL),
			omdb.WithTimeout(cfg.Search.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OMDb client: %w", err)
		}
		searchers = append(searchers, client)
	}

	if cfg.UsesTMDB() {
		if cfg.TMDB.APIKey == "" {
			logger.Warn().Msg("tmdb.api_key is not set, TMDB will reject requests")
		}
		client, err := tmdb.NewClient(cfg.TMDB.APIKey, logger,
			tmdb.WithBaseURL(cfg.TMDB.URL),
			tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
			tmdb.WithTimeout(cfg.Search.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create TMDB client: %w", err)
		}
		searchers = append(searchers, client)
	}

	if len(searchers) == 0 {
		return nil, fmt.Errorf("no provider configured")
	}
	return searchers, nil
}

// newSearcher returns the configured provider, or a fan-out over all of them
func newSearcher(cfg *config.Config, logger zerolog.Logger) (movie.Searcher, error) {
	searchers, err := newSearchers(cfg, logger)
	if err != nil {
		return nil, err
	}
	if len(searchers) == 1 {
		return searchers[0], nil
	}
	return search.NewMulti(logger, searchers...), nil
}

// newAnnotator connects to Radarr when enabled. Connection failures are
// logged and annotation is skipped.
func newAnnotator(cfg *config.Config, logger zerolog.Logger) *radarr.Client {
	if !cfg.Radarr.Enabled {
		return nil
	}

	client, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.Radarr.CacheTTL, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library status")
		return nil
	}

	logger.Info().Str("url", cfg.Radarr.URL).Msg("Radarr integration enabled")
	return client
}

// newFilter selects the active result filter.
// Priority: command line filter > preset > default
func newFilter(cfg *config.Config, logger zerolog.Logger) (filter.CompiledFilter, error) {
	manager := filter.NewManager(
		filter.WithCompiler(filter.NewExprCompiler(filter.WithCache(100), filter.WithLogger(logger))),
	)
	if err := manager.RegisterFilters(cfg.Filter.Expressions()); err != nil {
		return nil, fmt.Errorf("invalid filter preset: %w", err)
	}

	f, err := manager.Select(filterExpr, preset, cfg.Filter.DefaultExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if f != nil {
		logger.Info().Str("filter", f.Expression()).Msg("Filtering results")
	}
	return f, nil
}
