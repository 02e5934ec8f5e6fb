package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <application-id>",
	Short: "Show one application in full",
	Long:  "Show every tracked field of an application plus its interviews. Accepts the short ID prefixes printed by list.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the application as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	app, err := findApplication(ctx, store, args[0])
	if err != nil {
		return err
	}

	interviews, err := store.ListInterviews(ctx, app.ID)
	if err != nil {
		return fmt.Errorf("failed to list interviews: %w", err)
	}

	if showJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"application": app,
			"interviews":  interviews,
		})
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s at %s\n", app.Position, app.Company)
	_, _ = fmt.Fprintf(os.Stdout, "ID:        %s\n", app.ID)
	_, _ = fmt.Fprintf(os.Stdout, "Status:    %s\n", app.Status)
	_, _ = fmt.Fprintf(os.Stdout, "Priority:  %s\n", app.Priority)
	_, _ = fmt.Fprintf(os.Stdout, "Applied:   %s\n", app.ApplicationDate)
	printField("Location", app.Location)
	printField("URL", app.JobURL)
	printField("Salary", app.SalaryRange)
	printField("Source", app.Source)
	printField("Recruiter", app.RecruiterName)
	printField("Recruiter email", app.RecruiterEmail)
	printField("Follow up", app.FollowUpDate)
	printField("Interview", app.InterviewDate)
	printField("Interview type", app.InterviewType)
	printField("Rejection reason", app.RejectionReason)
	printField("Offer", app.OfferAmount)
	printField("Notes", app.Notes)

	if len(interviews) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nInterviews (%d):\n", len(interviews))
		for i := range interviews {
			iv := &interviews[i]
			_, _ = fmt.Fprintf(os.Stdout, "  %s %s", iv.InterviewDate, iv.InterviewType)
			if iv.InterviewerName != "" {
				_, _ = fmt.Fprintf(os.Stdout, " with %s", iv.InterviewerName)
			}
			_, _ = fmt.Fprintln(os.Stdout)
			if iv.NextSteps != "" {
				_, _ = fmt.Fprintf(os.Stdout, "    next: %s\n", iv.NextSteps)
			}
		}
	}

	return nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(os.Stdout, "%-9s %s\n", label+":", value)
}
