package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Provider names accepted by the provider setting
const (
	ProviderOMDb = "omdb"
	ProviderTMDB = "tmdb"
	ProviderAll  = "all"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "REELSEARCH"

// Load loads the configuration from file and environment. A missing config
// file in the default locations is not an error; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".reelsearch"))
		}
		v.AddConfigPath("/etc/reelsearch/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderOMDb)

	v.SetDefault("omdb.url", "https://www.omdbapi.com/")
	v.SetDefault("omdb.api_key", "")

	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w500")

	v.SetDefault("search.debounce", "600ms")
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.keep_results_on_error", false)

	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")
	v.SetDefault("radarr.api_key", "")
	v.SetDefault("radarr.cache_ttl", "5m")

	v.SetDefault("filter.default_expression", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
}

// bindEnv maps REELSEARCH_SECTION_KEY variables onto config keys. The API
// keys also accept the unprefixed names used by most tooling.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("omdb.api_key", EnvPrefix+"_OMDB_API_KEY", "OMDB_API_KEY")
	_ = v.BindEnv("tmdb.api_key", EnvPrefix+"_TMDB_API_KEY", "TMDB_API_KEY")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch cfg.Provider {
	case ProviderOMDb, ProviderTMDB, ProviderAll:
	default:
		return fmt.Errorf("invalid provider: %s (must be 'omdb', 'tmdb' or 'all')", cfg.Provider)
	}

	if cfg.Search.Debounce <= 0 {
		return fmt.Errorf("search.debounce must be positive")
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive")
	}

	if cfg.Radarr.Enabled {
		if cfg.Radarr.URL == "" {
			return fmt.Errorf("radarr.url is required when radarr is enabled")
		}
		if cfg.Radarr.APIKey == "" || cfg.Radarr.APIKey == "your-api-key-here" {
			return fmt.Errorf("radarr.api_key must be set to a valid API key")
		}
	}

	for name, p := range cfg.Filter.Presets {
		if strings.TrimSpace(p.Expression) == "" {
			return fmt.Errorf("filter preset '%s' has no expression", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// UsesOMDb reports whether the configured provider includes OMDb
func (c *Config) UsesOMDb() bool {
	return c.Provider == ProviderOMDb || c.Provider == ProviderAll
}

// UsesTMDB reports whether the configured provider includes TMDB
func (c *Config) UsesTMDB() bool {
	return c.Provider == ProviderTMDB || c.Provider == ProviderAll
}
