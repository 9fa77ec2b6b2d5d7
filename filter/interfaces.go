package filter

import (
	"github.com/s0up4200/reelsearch/movie"
)

// Filter decides whether a search result is shown
type Filter interface {
	// Evaluate checks if a movie matches the filter criteria
	Evaluate(m movie.Movie) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Apply returns the movies matching f, in their original order. A nil
// filter matches everything.
func Apply(f Filter, movies []movie.Movie) []movie.Movie {
	if f == nil {
		return movies
	}
	matches := make([]movie.Movie, 0, len(movies))
	for _, m := range movies {
		if f.Evaluate(m) {
			matches = append(matches, m)
		}
	}
	return matches
}
