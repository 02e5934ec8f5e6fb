package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/observability"
)

// loadCLIConfig merges the optional --config file with the shared root
// flags and fills remaining gaps with defaults. Command flags that were
// explicitly set still win; commands apply those themselves via Changed().
func loadCLIConfig() (config.Config, error) {
	var cfg config.Config

	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if rootVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", rootConfigPath)
		}
	}

	if rootDatabase != "" {
		cfg.DatabasePath = rootDatabase
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	return cfg.MergeWithDefaults(config.Config{
		DataDir:   config.DefaultDataDir,
		OutputDir: config.DefaultOutputDir,
	}), nil
}

// openStore opens the SQLite tracker database, creating it on first use.
func openStore(cfg *config.Config) (*db.Store, error) {
	path, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}
	store, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// apiKeyEnvVar names the environment variable that carries the key for
// the configured provider.
func apiKeyEnvVar(provider string) string {
	if provider == string(llm.ProviderOpenRouter) {
		return "OPENROUTER_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// resolveAPIKey picks the LLM API key: explicit flag, then config file,
// then the provider's environment variable.
func resolveAPIKey(cfg *config.Config, flagKey string) string {
	if flagKey != "" {
		return flagKey
	}
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv(apiKeyEnvVar(cfg.Provider))
}

// newLLMClient builds the tiered LLM client for the configured provider.
func newLLMClient(ctx context.Context, cfg *config.Config, flagKey string) (llm.Client, error) {
	key := resolveAPIKey(cfg, flagKey)
	if key == "" {
		return nil, fmt.Errorf("%s environment variable or --api-key flag is required", apiKeyEnvVar(cfg.Provider))
	}
	llmConfig, err := llm.ConfigForProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, llmConfig, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// resolveSerpAPIKey picks the job search key: explicit flag, then config
// file, then the SERPAPI_KEY environment variable.
func resolveSerpAPIKey(cfg *config.Config, flagKey string) string {
	if flagKey != "" {
		return flagKey
	}
	if cfg.SerpAPIKey != "" {
		return cfg.SerpAPIKey
	}
	return os.Getenv("SERPAPI_KEY")
}

// notionDatabaseID picks the Notion database: config file, then the
// NOTION_DATABASE_ID environment variable.
func notionDatabaseID(cfg *config.Config) string {
	if cfg.NotionDatabaseID != "" {
		return cfg.NotionDatabaseID
	}
	return os.Getenv("NOTION_DATABASE_ID")
}

func printer() *observability.Printer {
	return observability.NewPrinter(os.Stdout)
}

// findApplication resolves a full ID or a unique ID prefix, so the short
// IDs shown by list work as command arguments.
func findApplication(ctx context.Context, store *db.Store, idOrPrefix string) (*db.Application, error) {
	app, err := store.GetApplication(ctx, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	if app != nil {
		return app, nil
	}

	apps, err := store.ListApplications(ctx, &db.ApplicationFilters{Limit: db.MaxListLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	var match *db.Application
	for i := range apps {
		if strings.HasPrefix(apps[i].ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("application ID prefix %q is ambiguous", idOrPrefix)
			}
			match = &apps[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("application not found: %s", idOrPrefix)
	}
	return match, nil
}
