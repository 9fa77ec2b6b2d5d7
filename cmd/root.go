package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/reelsearch/config"
	"github.com/s0up4200/reelsearch/ui"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	logFile io.Closer

	version   = "dev"
	commit    = "none"
	buildTime = "unknown"

	// Command flags
	providerFlag string
	filterExpr   string
	preset       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reelsearch [query...]",
	Short: "Search movies from the terminal",
	Long: `reelsearch is an interactive movie search. Results update as you type,
using OMDb or TMDB as the metadata source and optionally marking movies
already in your Radarr library.`,
	Args:               cobra.ArbitraryArgs,
	PersistentPostRunE: closeApp,
	RunE:               runInteractive,
	SilenceUsage:       true,
}

// SetVersion sets the build information reported by the CLI
func SetVersion(v, c, built string) {
	version = v
	commit = c
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", v, c, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// assigned here rather than in the literal: initializeApp refers to rootCmd
	rootCmd.PersistentPreRunE = initializeApp

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "metadata provider: omdb, tmdb or all")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to results")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if providerFlag != "" {
		switch p := strings.ToLower(providerFlag); p {
		case config.ProviderOMDb, config.ProviderTMDB, config.ProviderAll:
			cfg.Provider = p
		default:
			return fmt.Errorf("invalid provider: %s (must be 'omdb', 'tmdb' or 'all')", providerFlag)
		}
	}

	// The interactive screen owns the terminal, so its logs go to a file
	out := io.Writer(os.Stderr)
	interactive := cmd == rootCmd
	if interactive {
		f, path, err := openLogFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		logFile = f
		out = f
		cfg.Logging.File = path
	}

	logger = setupLogger(cfg.Logging, out, !interactive && isTerminal(os.Stderr))
	if cfg.File != "" {
		logger.Debug().Str("config", cfg.File).Msg("Loaded configuration")
	}

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer, tty bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// openLogFile opens the interactive log file, defaulting to the user cache dir
func openLogFile(path string) (*os.File, string, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, "reelsearch", "reelsearch.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runInteractive starts the search screen
func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("interactive mode requires a terminal, use 'reelsearch search <query>' instead")
	}

	searcher, err := newSearcher(cfg, logger)
	if err != nil {
		return err
	}

	activeFilter, err := newFilter(cfg, logger)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Searcher:           searcher,
		Filter:             activeFilter,
		Debounce:           cfg.Search.Debounce,
		Timeout:            cfg.Search.Timeout,
		KeepResultsOnError: cfg.Search.KeepResultsOnError,
		InitialQuery:       strings.Join(args, " "),
		Logger:             logger,
	}
	if annotator := newAnnotator(cfg, logger); annotator != nil {
		opts.Annotator = annotator
	}

	logger.Info().
		Str("provider", searcher.Name()).
		Str("log_file", cfg.Logging.File).
		Msg("Starting interactive search")

	model := ui.NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	defer model.Close()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
