package filter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/s0up4200/reelsearch/movie"
)

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `contains(Title, "matrix")`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Tags == "action"`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `Year + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `Year > 1990 and HasRating and Rating >= 7.0 and not InLibrary`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f == nil {
				t.Fatalf("expected filter but got nil")
			}
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	m := movie.Movie{
		Title:     "The Matrix",
		Year:      "1999",
		PosterURL: "https://example.com/matrix.jpg",
		Rating:    8.2,
		HasRating: true,
		IMDBID:    "tt0133093",
		TMDBID:    603,
		Source:    "tmdb",
		InLibrary: true,
	}

	tests := []struct {
		name       string
		expression string
		movie      movie.Movie
		expected   bool
	}{
		{"title contains", `contains(Title, "MATRIX")`, m, true},
		{"title starts with", `startsWith(Title, "the ")`, m, true},
		{"title ends with", `endsWith(Title, "reloaded")`, m, false},
		{"lower", `lower(Title) == "the matrix"`, m, true},
		{"upper", `upper(Source) == "TMDB"`, m, true},
		{"year comparison", `Year < 2000`, m, true},
		{"year between", `between(Year, 1990, 1999)`, m, true},
		{"rating between", `between(Rating, 8.5, 10)`, m, false},
		{"years ago", `Year < yearsAgo(10)`, m, true},
		{"rating", `HasRating and Rating > 8`, m, true},
		{"poster", `HasPoster`, m, true},
		{"missing poster", `HasPoster`, movie.Movie{PosterURL: "N/A"}, false},
		{"library", `InLibrary`, m, true},
		{"ids", `IMDBID == "tt0133093" and TMDBID == 603`, m, true},
		{"unknown year", `Year == 0`, movie.Movie{Year: "N/A"}, true},
		{"source", `Source == "omdb"`, m, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			if result := f.Evaluate(tt.movie); result != tt.expected {
				t.Errorf("expected %v but got %v for expression %q", tt.expected, result, tt.expression)
			}
		})
	}
}

func TestYearsAgo(t *testing.T) {
	recent := movie.Movie{Year: time.Now().Format("2006")}
	f, err := CompileFilter(`Year >= yearsAgo(1)`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if !f.Evaluate(recent) {
		t.Errorf("expected a movie from this year to match")
	}
}

func TestRuntimeErrorIsNoMatch(t *testing.T) {
	f, err := NewExprCompiler(WithCustomFunctions(map[string]any{
		"fail": func() (bool, error) { return false, errors.New("boom") },
	})).Compile(`fail()`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if f.Evaluate(movie.Movie{Title: "x"}) {
		t.Errorf("expected runtime error to evaluate to false")
	}
}

func TestCustomFunctions(t *testing.T) {
	c := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 1970 },
	}))
	f, err := c.Compile(`isClassic(Year)`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if !f.Evaluate(movie.Movie{Year: "1968"}) {
		t.Errorf("expected 1968 to be a classic")
	}
	if f.Evaluate(movie.Movie{Year: "1999"}) {
		t.Errorf("expected 1999 not to be a classic")
	}
}

func TestApply(t *testing.T) {
	movies := []movie.Movie{
		{Title: "Alien", Year: "1979", Rating: 8.5, HasRating: true},
		{Title: "Aliens", Year: "1986", Rating: 8.4, HasRating: true},
		{Title: "Alien 3", Year: "1992", Rating: 6.4, HasRating: true},
		{Title: "Alien Resurrection", Year: "1997"},
	}

	f, err := CompileFilter(`HasRating and Rating > 8`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	got := Apply(f, movies)
	if len(got) != 2 || got[0].Title != "Alien" || got[1].Title != "Aliens" {
		t.Errorf("unexpected matches: %+v", got)
	}

	if all := Apply(nil, movies); len(all) != len(movies) {
		t.Errorf("nil filter should match everything, got %d", len(all))
	}

	if none := Apply(f, nil); none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewExprCompiler(WithCache(2))

	first, err := c.Compile(`Year > 2000`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	again, _ := c.Compile(`  Year > 2000  `)
	if first != again {
		t.Errorf("expected cached filter to be reused")
	}

	_, _ = c.Compile(`Year > 2001`)
	_, _ = c.Compile(`Year > 2002`)
	if c.Size() != 2 {
		t.Errorf("expected cache size 2, got %d", c.Size())
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Size())
	}

	if NewExprCompiler().Size() != 0 {
		t.Errorf("uncached compiler should report size 0")
	}
}

func TestLRUEviction(t *testing.T) {
	c := newLRUCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Errorf("expected least recently used key to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %v %v", v, ok)
	}
	c.Put("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("expected updated value, got %v", v)
	}
}

func TestManagerSelect(t *testing.T) {
	m := NewManager()
	err := m.RegisterFilters(map[string]string{
		"recent":  `Year >= 2010`,
		"missing": `not InLibrary`,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if names := m.ListFilters(); len(names) != 2 || names[0] != "missing" || names[1] != "recent" {
		t.Errorf("unexpected preset names: %v", names)
	}

	old := movie.Movie{Year: "1995"}

	tests := []struct {
		name       string
		expression string
		preset     string
		def        string
		wantNil    bool
		wantErr    error
		matchesOld bool
	}{
		{name: "expression wins", expression: `Year < 2000`, preset: "recent", def: `false`, matchesOld: true},
		{name: "preset over default", preset: "recent", def: `true`, matchesOld: false},
		{name: "default", def: `Year == 1995`, matchesOld: true},
		{name: "nothing set", wantNil: true},
		{name: "unknown preset", preset: "nope", wantErr: ErrPresetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := m.Select(tt.expression, tt.preset, tt.def)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if f != nil {
					t.Errorf("expected no filter, got %q", f.Expression())
				}
				return
			}
			if got := f.Evaluate(old); got != tt.matchesOld {
				t.Errorf("expected %v, got %v", tt.matchesOld, got)
			}
		})
	}
}

func TestManagerRegisterFiltersIsAtomic(t *testing.T) {
	m := NewManager()
	err := m.RegisterFilters(map[string]string{
		"good": `Year > 2000`,
		"bad":  `Year >`,
	})
	if err == nil {
		t.Fatalf("expected error for invalid preset")
	}
	if len(m.ListFilters()) != 0 {
		t.Errorf("no presets should be registered on failure")
	}

	if err := m.RegisterFilters(map[string]string{"good": `Year > 2000`}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, ok := m.GetFilter("good"); !ok {
		t.Errorf("expected preset to be registered")
	}
}

func TestManagerUnknownPresetListsAvailable(t *testing.T) {
	m := NewManager()

	_, err := m.Select("", "recent", "")
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "no presets configured") {
		t.Errorf("unexpected error message: %v", err)
	}

	if err := m.RegisterFilters(map[string]string{
		"recent":  `Year >= 2010`,
		"missing": `not InLibrary`,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = m.Select("", "classic", "")
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "available: missing, recent") {
		t.Errorf("expected available presets in error, got %v", err)
	}
}
