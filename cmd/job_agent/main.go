// Package main provides the job_agent CLI: a personal job search assistant
// with an application tracker, resume tailoring, outreach drafting and a
// daily automation agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Personal job search agent",
	Long: `job_agent tracks job applications in SQLite, tailors resumes and cover
letters to postings with an LLM, drafts recruiter outreach, searches job
boards, researches companies and answers questions over your own notes.
The agent command runs the whole daily routine; serve exposes it as a REST API.`,
}

var (
	rootConfigPath string
	rootDatabase   string
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&rootDatabase, "db", "", "Path to the SQLite database file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
