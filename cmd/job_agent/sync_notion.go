package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/notion"
	"github.com/spf13/cobra"
)

var syncNotionCmd = &cobra.Command{
	Use:   "sync-notion",
	Short: "Mirror the tracker into a Notion database",
	Long: `Push tracked applications into a Notion database, creating pages for
new applications and updating pages that already exist. Existing pages
are matched by company and position.`,
	RunE: runSyncNotion,
}

var (
	syncNotionToken      string
	syncNotionDatabaseID string
	syncNotionStatus     string
)

func init() {
	syncNotionCmd.Flags().StringVar(&syncNotionToken, "token", "", "Notion integration token (defaults to NOTION_TOKEN env var)")
	syncNotionCmd.Flags().StringVar(&syncNotionDatabaseID, "database-id", "", "Notion database ID (defaults to config or NOTION_DATABASE_ID)")
	syncNotionCmd.Flags().StringVar(&syncNotionStatus, "status", "", "Only sync applications with this status")

	rootCmd.AddCommand(syncNotionCmd)
}

func runSyncNotion(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	token := syncNotionToken
	if token == "" {
		token = os.Getenv("NOTION_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("NOTION_TOKEN environment variable or --token flag is required")
	}

	databaseID := syncNotionDatabaseID
	if databaseID == "" {
		databaseID = cfg.NotionDatabaseID
	}
	if databaseID == "" {
		databaseID = os.Getenv("NOTION_DATABASE_ID")
	}
	if databaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID environment variable, config or --database-id flag is required")
	}

	client, err := notion.NewClient(token, databaseID)
	if err != nil {
		return err
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	apps, err := store.ListApplications(ctx, &db.ApplicationFilters{
		Status: syncNotionStatus,
		Limit:  db.MaxListLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	if len(apps) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "Nothing to sync.")
		return nil
	}

	result, err := client.SyncApplications(ctx, apps)
	if err != nil {
		return fmt.Errorf("failed to sync to Notion: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Synced %d application(s): %d created, %d updated\n",
		result.Synced(), result.Created, result.Updated)
	for _, syncErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", syncErr)
	}

	return nil
}
