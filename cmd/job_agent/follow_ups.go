package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/spf13/cobra"
)

var followUpsCmd = &cobra.Command{
	Use:   "follow-ups",
	Short: "List applications due for a follow-up",
	Long:  "List active applications whose follow-up date falls within the look-ahead window, soonest first.",
	RunE:  runFollowUps,
}

var followUpsDays int

func init() {
	followUpsCmd.Flags().IntVar(&followUpsDays, "days", 0, "Look-ahead window in days (default from config)")

	rootCmd.AddCommand(followUpsCmd)
}

func runFollowUps(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	days := cfg.FollowUpDays
	if cmd.Flags().Changed("days") {
		days = followUpsDays
	}
	if days <= 0 {
		days = config.DefaultFollowUpDays
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	apps, err := store.FollowUpsDue(context.Background(), days)
	if err != nil {
		return fmt.Errorf("failed to list follow-ups: %w", err)
	}

	if len(apps) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Nothing due in the next %d day(s). 🎉\n", days)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "%d follow-up(s) due within %d day(s):\n\n", len(apps), days)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tSTATUS\tDUE")
	for i := range apps {
		app := &apps[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(app.ID), app.Company, app.Position, app.Status, app.FollowUpDate)
	}
	return w.Flush()
}
