package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Provider string        `mapstructure:"provider"`
	OMDb     OMDbConfig    `mapstructure:"omdb"`
	TMDB     TMDBConfig    `mapstructure:"tmdb"`
	Search   SearchConfig  `mapstructure:"search"`
	Radarr   RadarrConfig  `mapstructure:"radarr"`
	Filter   FilterConfig  `mapstructure:"filter"`
	Logging  LoggingConfig `mapstructure:"logging"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// OMDbConfig holds OMDb API connection details
type OMDbConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	URL          string `mapstructure:"url"`
	APIKey       string `mapstructure:"api_key"`
	ImageBaseURL string `mapstructure:"image_base_url"`
}

// SearchConfig controls the interactive search behaviour
type SearchConfig struct {
	Debounce           time.Duration `mapstructure:"debounce"`
	Timeout            time.Duration `mapstructure:"timeout"`
	KeepResultsOnError bool          `mapstructure:"keep_results_on_error"`
}

// RadarrConfig holds Radarr API connection details
type RadarrConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	URL      string        `mapstructure:"url"`
	APIKey   string        `mapstructure:"api_key"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	File   string `mapstructure:"file"`
}

// Expressions returns the preset expressions keyed by name
func (f FilterConfig) Expressions() map[string]string {
	out := make(map[string]string, len(f.Presets))
	for name, p := range f.Presets {
		out[name] = p.Expression
	}
	return out
}
