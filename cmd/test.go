package cmd

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/reelsearch/movie"
)

// probeQuery is a title every provider knows
const probeQuery = "The Matrix"

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the configured providers",
	Long:  `Run a probe search against each configured provider and check the Radarr connection when enabled.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

type probeResult struct {
	name    string
	results int
	err     error
}

func runTest(cmd *cobra.Command, args []string) error {
	searchers, err := newSearchers(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Search.Timeout)
	defer cancel()

	probes := make([]probeResult, len(searchers))
	var g errgroup.Group
	for i, s := range searchers {
		g.Go(func() error {
			page, err := s.Search(ctx, probeQuery, 1)
			probes[i] = probeResult{name: s.Name(), err: err}
			if err == nil {
				probes[i].results = page.TotalResults
			}
			return nil
		})
	}
	_ = g.Wait()

	var failures *multierror.Error
	for _, p := range probes {
		fmt.Printf("Testing %s...\n", p.name)
		if p.err != nil {
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", p.name, p.err))
			fmt.Printf("✗ %s\n", movie.Message(p.err))
			continue
		}
		fmt.Printf("✓ Connection successful! (%d results for %q)\n", p.results, probeQuery)
	}

	if cfg.Radarr.Enabled {
		fmt.Printf("\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
		client := newAnnotator(cfg, logger)
		if client == nil {
			failures = multierror.Append(failures, fmt.Errorf("radarr: connection failed"))
			fmt.Println("✗ Connection failed, see log for details")
		} else {
			lib, err := client.Library(ctx)
			if err != nil {
				failures = multierror.Append(failures, fmt.Errorf("radarr: %w", err))
				fmt.Printf("✗ %v\n", err)
			} else {
				fmt.Println("✓ Connection successful!")
				fmt.Printf("- Library movies: %d\n", lib.Size())
			}
		}
	} else {
		fmt.Println("\nRadarr integration: Disabled")
	}

	return failures.ErrorOrNil()
}
