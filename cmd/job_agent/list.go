package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	Long:  "List tracked applications, optionally filtered by status, company or priority.",
	RunE:  runList,
}

var (
	listStatus   string
	listCompany  string
	listPriority string
	listLimit    int
	listJSON     bool
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	listCmd.Flags().StringVarP(&listCompany, "company", "c", "", "Filter by company (substring match)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum rows to show")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the applications as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	if listStatus != "" && !types.IsValidStatus(listStatus) {
		return fmt.Errorf("invalid status: %s", listStatus)
	}
	if listPriority != "" && !types.IsValidPriority(listPriority) {
		return fmt.Errorf("invalid priority: %s", listPriority)
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	apps, err := store.ListApplications(context.Background(), &db.ApplicationFilters{
		Status:   listStatus,
		Company:  listCompany,
		Priority: listPriority,
		Limit:    listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if listJSON {
		return json.NewEncoder(os.Stdout).Encode(apps)
	}

	if len(apps) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No applications found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tSTATUS\tPRIORITY\tAPPLIED")
	for i := range apps {
		app := &apps[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(app.ID), app.Company, app.Position, app.Status, app.Priority, app.ApplicationDate)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "\n%d application(s)\n", len(apps))
	return nil
}

// shortID trims a UUID to its first block for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
