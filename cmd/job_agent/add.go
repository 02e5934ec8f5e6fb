package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Track a new job application",
	Long:  "Record a job application in the tracker. Defaults to status applied with today's date.",
	RunE:  runAdd,
}

var (
	addCompany        string
	addPosition       string
	addLocation       string
	addJobURL         string
	addDate           string
	addStatus         string
	addPriority       string
	addSalary         string
	addNotes          string
	addRecruiterName  string
	addRecruiterEmail string
)

func init() {
	addCmd.Flags().StringVarP(&addCompany, "company", "c", "", "Company name (required)")
	addCmd.Flags().StringVarP(&addPosition, "position", "p", "", "Position title (required)")
	addCmd.Flags().StringVarP(&addLocation, "location", "l", "", "Job location")
	addCmd.Flags().StringVar(&addJobURL, "url", "", "Job posting URL")
	addCmd.Flags().StringVar(&addDate, "date", "", "Application date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addStatus, "status", "", "Initial status (default applied)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "Priority: high, medium or low (default medium)")
	addCmd.Flags().StringVar(&addSalary, "salary", "", "Salary range, e.g. \"140k-160k\"")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.Flags().StringVar(&addRecruiterName, "recruiter-name", "", "Recruiter name")
	addCmd.Flags().StringVar(&addRecruiterEmail, "recruiter-email", "", "Recruiter email")

	_ = addCmd.MarkFlagRequired("company")
	_ = addCmd.MarkFlagRequired("position")

	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	app, err := store.CreateApplication(context.Background(), &db.ApplicationCreateInput{
		Company:         addCompany,
		Position:        addPosition,
		Location:        addLocation,
		JobURL:          addJobURL,
		ApplicationDate: addDate,
		Status:          addStatus,
		Priority:        addPriority,
		SalaryRange:     addSalary,
		Notes:           addNotes,
		RecruiterName:   addRecruiterName,
		RecruiterEmail:  addRecruiterEmail,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Tracked %s at %s (%s, %s)\n", app.Position, app.Company, app.Status, app.ApplicationDate)
	_, _ = fmt.Fprintf(os.Stdout, "ID: %s\n", app.ID)

	return nil
}
