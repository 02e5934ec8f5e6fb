package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jordan/job-search-agent/internal/search"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search job boards",
	Long: `Search Google Jobs listings through SerpAPI by free-form query, target
roles or company. With --track, new listings are queued in the tracker
with status new; listings already tracked are skipped.`,
	RunE: runSearchCmd,
}

var (
	searchQuery      string
	searchRoles      []string
	searchCompany    string
	searchLocation   string
	searchLimit      int
	searchPerRole    int
	searchRemote     bool
	searchDatePosted string
	searchJobType    string
	searchTrack      bool
	searchSerpKey    string
)

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Free-form search query")
	searchCmd.Flags().StringSliceVar(&searchRoles, "role", nil, "Target role to search (repeatable)")
	searchCmd.Flags().StringVarP(&searchCompany, "company", "c", "", "Search a specific company's openings")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Location filter")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum listings to return")
	searchCmd.Flags().IntVar(&searchPerRole, "per-role", 10, "Listings fetched per role")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "Remote listings only")
	searchCmd.Flags().StringVar(&searchDatePosted, "date-posted", "", "Freshness filter: today, 3days, week or month")
	searchCmd.Flags().StringVar(&searchJobType, "job-type", "", "FULLTIME, PARTTIME, CONTRACTOR or INTERN")
	searchCmd.Flags().BoolVar(&searchTrack, "track", false, "Queue new listings in the tracker")
	searchCmd.Flags().StringVar(&searchSerpKey, "serpapi-key", "", "SerpAPI key (defaults to SERPAPI_KEY env var)")

	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(_ *cobra.Command, _ []string) error {
	if searchQuery == "" && len(searchRoles) == 0 && searchCompany == "" {
		return fmt.Errorf("one of --query, --role or --company is required")
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	key := resolveSerpAPIKey(&cfg, searchSerpKey)
	if key == "" {
		return fmt.Errorf("SERPAPI_KEY environment variable or --serpapi-key flag is required")
	}
	client, err := search.NewClient(key)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var results []types.JobResult
	switch {
	case searchCompany != "":
		results, err = client.SearchByCompany(ctx, searchCompany, searchLocation, searchRoles, searchLimit)
	case len(searchRoles) > 0:
		results, err = client.SearchTargetRoles(ctx, searchRoles, searchLocation, searchPerRole)
	default:
		results, err = client.SearchJobs(ctx, search.Params{
			Query:      searchQuery,
			Location:   searchLocation,
			Limit:      searchLimit,
			DatePosted: searchDatePosted,
			JobType:    searchJobType,
			Remote:     searchRemote,
		})
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	results = search.Dedupe(results)

	if cfg.Verbose {
		printer().PrintJobResults(results)
	} else {
		printResultsTable(results)
	}

	if !searchTrack || len(results) == 0 {
		return nil
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tracked := 0
	for i := range results {
		result := &results[i]
		existing, err := store.FindByCompanyPosition(ctx, result.Company, result.Title)
		if err != nil {
			return fmt.Errorf("failed to check tracker: %w", err)
		}
		if existing != nil {
			continue
		}
		if _, err := store.CreateApplication(ctx, search.ToApplicationInput(result)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to track %s at %s: %v\n", result.Title, result.Company, err)
			continue
		}
		tracked++
	}
	_, _ = fmt.Fprintf(os.Stdout, "\n✅ Queued %d new listing(s) in the tracker\n", tracked)

	return nil
}

func printResultsTable(results []types.JobResult) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No listings found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tCOMPANY\tLOCATION\tVIA")
	for i := range results {
		r := &results[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, r.Company, r.Location, r.Via)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(os.Stdout, "\n%d listing(s)\n", len(results))
}
