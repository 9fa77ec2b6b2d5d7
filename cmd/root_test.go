package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/reelsearch/config"
	"github.com/s0up4200/reelsearch/movie"
)

func testConfig(provider string) *config.Config {
	return &config.Config{
		Provider: provider,
		OMDb:     config.OMDbConfig{URL: "https://www.omdbapi.com/", APIKey: "k"},
		TMDB:     config.TMDBConfig{URL: "https://api.themoviedb.org/3", APIKey: "k"},
		Search:   config.SearchConfig{Debounce: 600 * time.Millisecond, Timeout: time.Second},
		Filter: config.FilterConfig{
			Presets: map[string]config.PresetConfig{
				"classics": {Expression: "Year > 0 and Year < 1970"},
			},
		},
	}
}

func TestNewSearcher(t *testing.T) {
	tests := []struct {
		provider string
		name     string
	}{
		{config.ProviderOMDb, "omdb"},
		{config.ProviderTMDB, "tmdb"},
		{config.ProviderAll, "omdb+tmdb"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			s, err := newSearcher(testConfig(tt.provider), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.name, s.Name())
		})
	}

	_, err := newSearcher(testConfig("netflix"), zerolog.Nop())
	assert.Error(t, err)
}

func TestNewFilter(t *testing.T) {
	t.Cleanup(func() {
		filterExpr = ""
		preset = ""
	})
	cfg := testConfig(config.ProviderOMDb)

	f, err := newFilter(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, f)

	preset = "classics"
	f, err = newFilter(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.True(t, f.Evaluate(movie.Movie{Year: "1968"}))

	filterExpr = "Year > 2000"
	f, err = newFilter(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Year > 2000", f.Expression())

	filterExpr = ""
	preset = "missing"
	_, err = newFilter(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewAnnotatorDisabled(t *testing.T) {
	assert.Nil(t, newAnnotator(testConfig(config.ProviderOMDb), zerolog.Nop()))
}

func TestCurrentVersion(t *testing.T) {
	v, err := currentVersion("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = currentVersion("dev")
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	l := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf, false)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reelsearch.log")
	f, got, err := openLogFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, path, got)
}
