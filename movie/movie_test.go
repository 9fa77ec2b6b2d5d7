package movie

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoster(t *testing.T) {
	tests := []struct {
		name     string
		poster   string
		expected string
	}{
		{"real poster", "https://img.example/p.jpg", "https://img.example/p.jpg"},
		{"empty", "", PlaceholderPoster},
		{"N/A", "N/A", PlaceholderPoster},
		{"whitespace", "  ", PlaceholderPoster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{PosterURL: tt.poster}
			assert.Equal(t, tt.expected, m.Poster())
		})
	}
}

func TestSubtitle(t *testing.T) {
	assert.Equal(t, "1999", Movie{Year: "1999"}.Subtitle())
	assert.Equal(t, "1999 · ★ 8.2", Movie{Year: "1999", Rating: 8.18, HasRating: true}.Subtitle())
	assert.Equal(t, "★ 0.0", Movie{HasRating: true}.Subtitle())
	assert.Equal(t, "", Movie{}.Subtitle())
}

func TestYearNumber(t *testing.T) {
	assert.Equal(t, 1999, Movie{Year: "1999"}.YearNumber())
	assert.Equal(t, 2010, Movie{Year: "2010–2013"}.YearNumber())
	assert.Equal(t, 0, Movie{Year: "N/A"}.YearNumber())
	assert.Equal(t, 0, Movie{}.YearNumber())
}

func TestKey(t *testing.T) {
	a := Movie{IMDBID: "tt0133093", Title: "The Matrix"}
	b := Movie{Title: " The Matrix ", Year: "1999"}
	assert.Equal(t, "imdb:tt0133093", a.Key())
	assert.Equal(t, "title:the matrix:1999", b.Key())
}

func TestIsBlank(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n", "    "} {
		assert.True(t, IsBlank(q), "%q should be blank", q)
	}
	assert.False(t, IsBlank(" bat "))
}

func TestSearchError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("searching: %w", RequestFailed("tmdb", "Failed to fetch from TMDB", 0, cause))

	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.False(t, errors.Is(err, ErrAPI))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Failed to fetch from TMDB", Message(err))

	apiErr := APIFailure("omdb", "Movie not found!", 200)
	assert.True(t, errors.Is(apiErr, ErrAPI))
	assert.Equal(t, "Movie not found!", apiErr.Error())
	assert.Equal(t, "omdb: Movie not found! (status 200)", apiErr.Detail())

	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}

func TestFormatMovieList(t *testing.T) {
	assert.Equal(t, "No movies found", FormatMovieList(nil, FormatOptions{}))
	assert.Equal(t, "No movies found", FormatMovieList(EmptyPage(), FormatOptions{}))

	page := &Page{
		Movies: []Movie{
			{Title: "Batman", Year: "1989", IMDBID: "tt0096895", InLibrary: true},
			{Title: "Batman Begins", Year: "2005", PosterURL: "N/A"},
		},
		Page:       1,
		TotalPages: 3,
	}

	out := FormatMovieList(page, FormatOptions{ShowPosters: true, ShowIDs: true, Unfiltered: 5})
	require.Contains(t, out, "Movies (2 of 5), page 1/3:")
	assert.Contains(t, out, "├── Batman (1989) [IN LIBRARY]")
	assert.Contains(t, out, "│   IMDb: tt0096895")
	assert.Contains(t, out, "╰── Batman Begins (2005)")
	assert.Contains(t, out, "    Poster: "+PlaceholderPoster)
}
