package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/reelsearch/movie"
)

// Multi fans a query out to several providers concurrently and merges the
// results in provider order.
type Multi struct {
	searchers []movie.Searcher
	logger    zerolog.Logger
}

var _ movie.Searcher = (*Multi)(nil)

// NewMulti creates a searcher over the given providers
func NewMulti(logger zerolog.Logger, searchers ...movie.Searcher) *Multi {
	return &Multi{
		searchers: searchers,
		logger:    logger,
	}
}

// Name joins the provider names
func (m *Multi) Name() string {
	names := make([]string, 0, len(m.searchers))
	for _, s := range m.searchers {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

// Search queries every provider and de-duplicates the merged results.
// It fails only when every provider fails, with the first provider's error.
func (m *Multi) Search(ctx context.Context, query string, page int) (*movie.Page, error) {
	if movie.IsBlank(query) || len(m.searchers) == 0 {
		return movie.EmptyPage(), nil
	}

	pages := make([]*movie.Page, len(m.searchers))
	errs := make([]error, len(m.searchers))

	var g errgroup.Group
	for i, s := range m.searchers {
		g.Go(func() error {
			// collected, not returned, so siblings keep running
			pages[i], errs[i] = s.Search(ctx, query, page)
			return nil
		})
	}
	_ = g.Wait()

	merged := &movie.Page{Movies: []movie.Movie{}, Page: page}
	seen := make(map[string]struct{})
	succeeded := 0
	var failures *multierror.Error

	for i, p := range pages {
		if errs[i] != nil {
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", m.searchers[i].Name(), errs[i]))
			continue
		}
		succeeded++
		if p == nil {
			continue
		}

		for _, mv := range p.Movies {
			key := mv.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged.Movies = append(merged.Movies, mv)
		}
		if p.TotalPages > merged.TotalPages {
			merged.TotalPages = p.TotalPages
		}
		merged.TotalResults += p.TotalResults
	}

	if failures != nil {
		m.logger.Warn().
			Err(failures.ErrorOrNil()).
			Str("query", query).
			Int("failed", failures.Len()).
			Msg("Provider search failed")
	}

	// The first provider's message is the one the screen shows
	if succeeded == 0 {
		return nil, firstError(errs)
	}

	return merged, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return errors.New("all providers failed")
}
