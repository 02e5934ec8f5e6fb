package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show job search statistics",
	Long:  "Show totals, status breakdown, most applied-to companies, monthly volume and response rate.",
	RunE:  runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Statistics(context.Background())
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	if statsJSON {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	printer().PrintStats(stats)

	if len(stats.MonthlyCounts) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "\nBy month:")
		for _, m := range stats.MonthlyCounts {
			_, _ = fmt.Fprintf(os.Stdout, "  %s  %d\n", m.Month, m.Count)
		}
	}

	return nil
}
