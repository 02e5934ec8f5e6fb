package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/stretchr/testify/assert"
)

// getBinaryPath returns the path to the job_agent binary for CLI tests.
// The tests exercise the built binary end to end, so they need make build
// to have run first and are skipped in short mode.
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "job_agent")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

func TestAPIKeyEnvVar(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", apiKeyEnvVar(""))
	assert.Equal(t, "GEMINI_API_KEY", apiKeyEnvVar("gemini"))
	assert.Equal(t, "OPENROUTER_API_KEY", apiKeyEnvVar("openrouter"))
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &config.Config{APIKey: "config-key"}

	assert.Equal(t, "flag-key", resolveAPIKey(cfg, "flag-key"))
	assert.Equal(t, "config-key", resolveAPIKey(cfg, ""))
	assert.Equal(t, "env-key", resolveAPIKey(&config.Config{}, ""))
}

func TestResolveAPIKey_ProviderEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OPENROUTER_API_KEY", "router-key")

	assert.Equal(t, "gemini-key", resolveAPIKey(&config.Config{}, ""))
	assert.Equal(t, "router-key", resolveAPIKey(&config.Config{Provider: "openrouter"}, ""))
}

func TestResolveSerpAPIKey(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "env-serp")

	assert.Equal(t, "flag-serp", resolveSerpAPIKey(&config.Config{SerpAPIKey: "config-serp"}, "flag-serp"))
	assert.Equal(t, "config-serp", resolveSerpAPIKey(&config.Config{SerpAPIKey: "config-serp"}, ""))
	assert.Equal(t, "env-serp", resolveSerpAPIKey(&config.Config{}, ""))
}

func TestNotionDatabaseID(t *testing.T) {
	t.Setenv("NOTION_DATABASE_ID", "env-db")

	assert.Equal(t, "config-db", notionDatabaseID(&config.Config{NotionDatabaseID: "config-db"}))
	assert.Equal(t, "env-db", notionDatabaseID(&config.Config{}))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-abcd-efgh"))
	assert.Equal(t, "short", shortID("short"))
}
