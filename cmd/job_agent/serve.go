package main

import (
	"os"
	"strconv"

	"github.com/jordan/job-search-agent/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the tracker, tailoring, messaging,
search, knowledge and agent operations as a JSON API. Requires
JWT_SECRET; integration keys (GEMINI_API_KEY, SERPAPI_KEY,
NOTION_TOKEN) are optional and gate their routes.`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080 or PORT env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	port := servePort
	if !cmd.Flags().Changed("port") {
		if env := os.Getenv("PORT"); env != "" {
			if p, err := strconv.Atoi(env); err == nil {
				port = p
			}
		}
	}
	if port == 0 {
		port = 8080
	}

	databasePath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:         port,
		DatabasePath: databasePath,
		LLMProvider:  cfg.Provider,
		LLMAPIKey:    resolveAPIKey(&cfg, ""),
		SerpAPIKey:   resolveSerpAPIKey(&cfg, ""),

		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: notionDatabaseID(&cfg),

		OutputDir:    cfg.OutputDir,
		TargetRoles:  cfg.TargetRoles,
		Location:     cfg.PreferredLocation,
		TopCompanies: cfg.TopCompanies,
		DailyLimit:   cfg.DailyLimit,
		FollowUpDays: cfg.FollowUpDays,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
