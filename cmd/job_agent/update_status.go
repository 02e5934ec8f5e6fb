package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/spf13/cobra"
)

var updateStatusCmd = &cobra.Command{
	Use:   "update-status <application-id> <status>",
	Short: "Move an application through the pipeline",
	Long: `Update an application's status. Valid statuses: new, applied, under_review,
interview_scheduled, rejected, offer_received. Status-specific details
(interview date, rejection reason, offer amount) ride along as flags.`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdateStatus,
}

var (
	updateInterviewDate   string
	updateInterviewType   string
	updateRejectionReason string
	updateOfferAmount     string
	updateNotes           string
	updateFollowUp        string
)

func init() {
	updateStatusCmd.Flags().StringVar(&updateInterviewDate, "interview-date", "", "Interview date YYYY-MM-DD")
	updateStatusCmd.Flags().StringVar(&updateInterviewType, "interview-type", "", "Interview type: phone, video or onsite")
	updateStatusCmd.Flags().StringVar(&updateRejectionReason, "rejection-reason", "", "Why it was rejected")
	updateStatusCmd.Flags().StringVar(&updateOfferAmount, "offer", "", "Offer amount")
	updateStatusCmd.Flags().StringVar(&updateNotes, "notes", "", "Replace the notes field")
	updateStatusCmd.Flags().StringVar(&updateFollowUp, "follow-up", "", "Next follow-up date YYYY-MM-DD")

	rootCmd.AddCommand(updateStatusCmd)
}

func runUpdateStatus(cmd *cobra.Command, args []string) error {
	status := args[1]
	if !types.IsValidStatus(status) {
		return fmt.Errorf("invalid status: %s", status)
	}
	if updateInterviewType != "" && !types.IsValidInterviewType(updateInterviewType) {
		return fmt.Errorf("invalid interview type: %s", updateInterviewType)
	}

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

	input := &db.ApplicationUpdateInput{Status: &status}
	if cmd.Flags().Changed("interview-date") {
		input.InterviewDate = &updateInterviewDate
	}
	if cmd.Flags().Changed("interview-type") {
		input.InterviewType = &updateInterviewType
	}
	if cmd.Flags().Changed("rejection-reason") {
		input.RejectionReason = &updateRejectionReason
	}
	if cmd.Flags().Changed("offer") {
		input.OfferAmount = &updateOfferAmount
	}
	if cmd.Flags().Changed("notes") {
		input.Notes = &updateNotes
	}
	if cmd.Flags().Changed("follow-up") {
		input.FollowUpDate = &updateFollowUp
	}

	if _, err := store.UpdateApplication(ctx, app.ID, input); err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ %s at %s → %s\n", app.Position, app.Company, status)
	return nil
}
