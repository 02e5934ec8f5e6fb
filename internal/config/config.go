// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default values applied when neither the config file nor flags set them.
const (
	DefaultDatabasePath = "data/job_applications.db"
	DefaultDataDir      = "data"
	DefaultOutputDir    = "output"
	DefaultDailyLimit   = 5
	DefaultFollowUpDays = 7
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume       string `json:"resume,omitempty"`        // Path to the base resume (markdown)
	DataDir      string `json:"data_dir,omitempty"`      // Directory of knowledge base documents
	OutputDir    string `json:"output_dir,omitempty"`    // Directory for generated artifacts
	DatabasePath string `json:"database_path,omitempty"` // Path to the SQLite database file
	TemplatesDir string `json:"templates_dir,omitempty"` // Directory of outreach message templates

	// LLM
	Provider string `json:"provider,omitempty"` // LLM provider: gemini or openrouter
	APIKey   string `json:"api_key,omitempty"`  // Provider API key

	// Integrations
	SerpAPIKey       string `json:"serpapi_key,omitempty"`        // SerpAPI key for job search
	NotionDatabaseID string `json:"notion_database_id,omitempty"` // Notion database for tracker sync
	DriveCredentials string `json:"drive_credentials,omitempty"`  // Google OAuth credentials.json
	DriveToken       string `json:"drive_token,omitempty"`        // Cached OAuth token.json
	DriveFolder      string `json:"drive_folder,omitempty"`       // Drive folder name for uploads

	// Agent behavior
	TargetRoles       []string `json:"target_roles,omitempty"`       // Roles searched by the daily agent
	PreferredLocation string   `json:"preferred_location,omitempty"` // Default search location
	TopCompanies      []string `json:"top_companies,omitempty"`      // Companies that get high priority
	DailyLimit        int      `json:"daily_limit,omitempty"`        // Max applications created per day
	FollowUpDays      int      `json:"follow_up_days,omitempty"`     // Days between follow-ups

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Provider != "" && c.Provider != "gemini" && c.Provider != "openrouter" {
		return fmt.Errorf("config error: 'provider' must be gemini or openrouter, got %q", c.Provider)
	}

	if c.DailyLimit < 0 {
		return fmt.Errorf("config error: 'daily_limit' must be non-negative")
	}
	if c.FollowUpDays < 0 {
		return fmt.Errorf("config error: 'follow_up_days' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	if c.TemplatesDir != "" {
		if _, err := os.Stat(c.TemplatesDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: templates directory not found: %s", c.TemplatesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabasePath == "" {
		result.DatabasePath = defaults.DatabasePath
	}
	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SerpAPIKey == "" {
		result.SerpAPIKey = defaults.SerpAPIKey
	}
	if result.NotionDatabaseID == "" {
		result.NotionDatabaseID = defaults.NotionDatabaseID
	}
	if result.DriveCredentials == "" {
		result.DriveCredentials = defaults.DriveCredentials
	}
	if result.DriveToken == "" {
		result.DriveToken = defaults.DriveToken
	}
	if result.DriveFolder == "" {
		result.DriveFolder = defaults.DriveFolder
	}
	if result.PreferredLocation == "" {
		result.PreferredLocation = defaults.PreferredLocation
	}

	// Slice fields: use default if empty
	if len(result.TargetRoles) == 0 {
		result.TargetRoles = defaults.TargetRoles
	}
	if len(result.TopCompanies) == 0 {
		result.TopCompanies = defaults.TopCompanies
	}

	// Int fields: use default if zero
	if result.DailyLimit == 0 {
		if defaults.DailyLimit > 0 {
			result.DailyLimit = defaults.DailyLimit
		} else {
			result.DailyLimit = DefaultDailyLimit
		}
	}
	if result.FollowUpDays == 0 {
		if defaults.FollowUpDays > 0 {
			result.FollowUpDays = defaults.FollowUpDays
		} else {
			result.FollowUpDays = DefaultFollowUpDays
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveDatabasePath returns the configured database path or the default,
// creating the parent directory when missing.
func (c *Config) ResolveDatabasePath() (string, error) {
	path := c.DatabasePath
	if path == "" {
		path = DefaultDatabasePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return path, nil
}
