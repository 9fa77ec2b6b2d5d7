package radarr

import (
	"context"

	"golift.io/starr/radarr"

	"github.com/s0up4200/reelsearch/movie"
)

// RadarrAPI is the subset of the starr Radarr client used for library lookups
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	Ping() error
}

// Annotator marks search results that already exist in a library
type Annotator interface {
	Annotate(ctx context.Context, movies []movie.Movie) []movie.Movie
}
