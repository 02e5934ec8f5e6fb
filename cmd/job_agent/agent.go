package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/agent"
	"github.com/jordan/job-search-agent/internal/notion"
	"github.com/jordan/job-search-agent/internal/search"
	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the daily job-search workflow",
	Long: `Run the daily routine in one shot: process due follow-ups, search the
target roles, queue promising listings as applications (respecting the
daily limit), advance stale statuses and sync the tracker to Notion.
Integrations that are not configured are skipped with a note in the
summary.`,
	RunE: runAgentCmd,
}

var (
	agentRoles        []string
	agentLocation     string
	agentTopCompanies []string
	agentDailyLimit   int
	agentFollowUpDays int
	agentPerRole      int
	agentAPIKey       string
)

func init() {
	agentCmd.Flags().StringSliceVar(&agentRoles, "roles", nil, "Target roles to search (repeatable, default from config)")
	agentCmd.Flags().StringVarP(&agentLocation, "location", "l", "", "Search location (default from config)")
	agentCmd.Flags().StringSliceVar(&agentTopCompanies, "top-companies", nil, "Companies whose listings get high priority")
	agentCmd.Flags().IntVar(&agentDailyLimit, "daily-limit", 0, "Max applications created per run")
	agentCmd.Flags().IntVar(&agentFollowUpDays, "follow-up-days", 0, "Days between follow-ups")
	agentCmd.Flags().IntVar(&agentPerRole, "per-role", 0, "Listings fetched per role")
	agentCmd.Flags().StringVar(&agentAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var)")

	rootCmd.AddCommand(agentCmd)
}

func runAgentCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("roles") {
		cfg.TargetRoles = agentRoles
	}
	if cmd.Flags().Changed("location") {
		cfg.PreferredLocation = agentLocation
	}
	if cmd.Flags().Changed("top-companies") {
		cfg.TopCompanies = agentTopCompanies
	}
	if cmd.Flags().Changed("daily-limit") {
		cfg.DailyLimit = agentDailyLimit
	}
	if cmd.Flags().Changed("follow-up-days") {
		cfg.FollowUpDays = agentFollowUpDays
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	opts := agent.RunOptions{
		Store:        store,
		TargetRoles:  cfg.TargetRoles,
		Location:     cfg.PreferredLocation,
		TopCompanies: cfg.TopCompanies,
		DailyLimit:   cfg.DailyLimit,
		FollowUpDays: cfg.FollowUpDays,
		PerRole:      agentPerRole,
		Verbose:      cfg.Verbose,
	}

	// Integrations are optional: a missing key skips that step.
	if client, err := newLLMClient(ctx, &cfg, agentAPIKey); err == nil {
		defer client.Close()
		opts.Client = client
	} else if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Skipping follow-up drafting: %v\n", err)
	}

	if key := resolveSerpAPIKey(&cfg, ""); key != "" {
		searcher, err := search.NewClient(key)
		if err != nil {
			return err
		}
		opts.Searcher = searcher
	} else if cfg.Verbose {
		_, _ = fmt.Fprintln(os.Stdout, "Skipping job search: SERPAPI_KEY not set")
	}

	token := os.Getenv("NOTION_TOKEN")
	databaseID := notionDatabaseID(&cfg)
	if token != "" && databaseID != "" {
		syncer, err := notion.NewClient(token, databaseID)
		if err != nil {
			return err
		}
		opts.Notion = syncer
	} else if cfg.Verbose {
		_, _ = fmt.Fprintln(os.Stdout, "Skipping Notion sync: NOTION_TOKEN or database ID not set")
	}

	summary, err := agent.New().RunDaily(ctx, opts)
	if err != nil {
		return err
	}

	printer().PrintRunSummary(summary)
	return nil
}
