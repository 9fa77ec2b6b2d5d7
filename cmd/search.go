package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelsearch/filter"
	"github.com/s0up4200/reelsearch/movie"
)

var (
	pageNum     int
	jsonOutput  bool
	showPosters bool
	showIDs     bool
)

// searchCmd runs a single search and prints the results
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search once and print the results",
	Long:  `Run a single search against the configured provider and print the results, without the interactive screen.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&pageNum, "page", 1, "result page to fetch")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	searchCmd.Flags().BoolVar(&showPosters, "posters", false, "show poster URLs")
	searchCmd.Flags().BoolVar(&showIDs, "ids", false, "show IMDb and TMDB ids")
}

// searchOutput is the JSON shape of the search command
type searchOutput struct {
	Query        string        `json:"query"`
	Provider     string        `json:"provider"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Filter       string        `json:"filter,omitempty"`
	Movies       []movieOutput `json:"movies"`
}

type movieOutput struct {
	Title     string  `json:"title"`
	Year      string  `json:"year,omitempty"`
	Poster    string  `json:"poster"`
	Rating    float64 `json:"rating,omitempty"`
	IMDBID    string  `json:"imdb_id,omitempty"`
	TMDBID    int64   `json:"tmdb_id,omitempty"`
	Source    string  `json:"source"`
	InLibrary bool    `json:"in_library,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if movie.IsBlank(query) {
		return fmt.Errorf("query must not be empty")
	}
	if pageNum < 1 {
		return fmt.Errorf("invalid page: %d", pageNum)
	}

	searcher, err := newSearcher(cfg, logger)
	if err != nil {
		return err
	}
	activeFilter, err := newFilter(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Search.Timeout)
	defer cancel()

	logger.Debug().Str("query", query).Int("page", pageNum).Str("provider", searcher.Name()).Msg("Searching")

	page, err := searcher.Search(ctx, query, pageNum)
	if err != nil {
		var se *movie.SearchError
		if errors.As(err, &se) {
			logger.Debug().Msg(se.Detail())
		}
		return err
	}

	if annotator := newAnnotator(cfg, logger); annotator != nil {
		page.Movies = annotator.Annotate(ctx, page.Movies)
	}

	unfiltered := len(page.Movies)
	if activeFilter != nil {
		page.Movies = filter.Apply(activeFilter, page.Movies)
	}

	if jsonOutput {
		out := searchOutput{
			Query:        query,
			Provider:     searcher.Name(),
			Page:         page.Page,
			TotalPages:   page.TotalPages,
			TotalResults: page.TotalResults,
			Movies:       make([]movieOutput, 0, len(page.Movies)),
		}
		if activeFilter != nil {
			out.Filter = activeFilter.Expression()
		}
		for _, m := range page.Movies {
			mo := movieOutput{
				Title:     m.Title,
				Year:      m.Year,
				Poster:    m.Poster(),
				IMDBID:    m.IMDBID,
				TMDBID:    m.TMDBID,
				Source:    m.Source,
				InLibrary: m.InLibrary,
			}
			if m.HasRating {
				mo.Rating = m.Rating
			}
			out.Movies = append(out.Movies, mo)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	opts := movie.FormatOptions{ShowPosters: showPosters, ShowIDs: showIDs}
	if activeFilter != nil {
		opts.Unfiltered = unfiltered
	}
	fmt.Println(movie.FormatMovieList(page, opts))
	return nil
}
