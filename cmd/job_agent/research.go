package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/research"
	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a company's site for outreach context",
	Long: `Crawl a handful of pages from a company's site (about, careers, values)
and distill a profile: what they do, culture, tone and values. The
profile is stored and reused by tailor and compose to personalize
cover letters and messages.`,
	RunE: runResearchCmd,
}

var (
	researchCompany  string
	researchURL      string
	researchMaxPages int
	researchJSON     bool
	researchAPIKey   string
)

func init() {
	researchCmd.Flags().StringVarP(&researchCompany, "company", "c", "", "Company name (required)")
	researchCmd.Flags().StringVarP(&researchURL, "url", "u", "", "Seed URL, usually the company homepage (required)")
	researchCmd.Flags().IntVar(&researchMaxPages, "max-pages", 0, "Page budget for the crawl")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "Print the profile as JSON")
	researchCmd.Flags().StringVar(&researchAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var)")

	_ = researchCmd.MarkFlagRequired("company")
	_ = researchCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(researchCmd)
}

func runResearchCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, &cfg, researchAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	profile, err := research.Research(ctx, client, researchCompany, researchURL, &research.Options{
		MaxPages: researchMaxPages,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.UpsertCompanyProfile(ctx, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to store company profile: %v\n", err)
	}

	if researchJSON {
		return json.NewEncoder(os.Stdout).Encode(profile)
	}

	printer().PrintCompanyProfile(profile)
	return nil
}
