package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview <application-id>",
	Short: "Record or list interviews for an application",
	Long:  "Record an interview round with preparation and feedback notes, or list the rounds recorded so far with --list.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterview,
}

var (
	interviewList        bool
	interviewDate        string
	interviewType        string
	interviewInterviewer string
	interviewerTitle     string
	interviewQuestions   string
	interviewAnswers     string
	interviewFeedback    string
	interviewNextSteps   string
	interviewPrep        string
)

func init() {
	interviewCmd.Flags().BoolVar(&interviewList, "list", false, "List recorded interviews instead of adding one")
	interviewCmd.Flags().StringVar(&interviewDate, "date", "", "Interview date YYYY-MM-DD (required unless --list)")
	interviewCmd.Flags().StringVar(&interviewType, "type", "", "Interview type: phone, video or onsite (required unless --list)")
	interviewCmd.Flags().StringVar(&interviewInterviewer, "interviewer", "", "Interviewer name")
	interviewCmd.Flags().StringVar(&interviewerTitle, "interviewer-title", "", "Interviewer title")
	interviewCmd.Flags().StringVar(&interviewQuestions, "questions", "", "Questions that were asked")
	interviewCmd.Flags().StringVar(&interviewAnswers, "answers", "", "How you answered")
	interviewCmd.Flags().StringVar(&interviewFeedback, "feedback", "", "Feedback received")
	interviewCmd.Flags().StringVar(&interviewNextSteps, "next-steps", "", "Agreed next steps")
	interviewCmd.Flags().StringVar(&interviewPrep, "prep", "", "Preparation notes")

	rootCmd.AddCommand(interviewCmd)
}

func runInterview(_ *cobra.Command, args []string) error {
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

	if interviewList {
		interviews, err := store.ListInterviews(ctx, app.ID)
		if err != nil {
			return fmt.Errorf("failed to list interviews: %w", err)
		}
		if len(interviews) == 0 {
			_, _ = fmt.Fprintf(os.Stdout, "No interviews recorded for %s at %s.\n", app.Position, app.Company)
			return nil
		}
		for i := range interviews {
			iv := &interviews[i]
			_, _ = fmt.Fprintf(os.Stdout, "%s  %s", iv.InterviewDate, iv.InterviewType)
			if iv.InterviewerName != "" {
				_, _ = fmt.Fprintf(os.Stdout, "  %s", iv.InterviewerName)
			}
			_, _ = fmt.Fprintln(os.Stdout)
			if iv.FeedbackReceived != "" {
				_, _ = fmt.Fprintf(os.Stdout, "  feedback: %s\n", iv.FeedbackReceived)
			}
			if iv.NextSteps != "" {
				_, _ = fmt.Fprintf(os.Stdout, "  next: %s\n", iv.NextSteps)
			}
		}
		return nil
	}

	if interviewDate == "" || interviewType == "" {
		return fmt.Errorf("--date and --type are required when adding an interview")
	}
	if !types.IsValidInterviewType(interviewType) {
		return fmt.Errorf("invalid interview type: %s", interviewType)
	}

	iv, err := store.AddInterview(ctx, &db.InterviewCreateInput{
		ApplicationID:    app.ID,
		InterviewDate:    interviewDate,
		InterviewType:    interviewType,
		InterviewerName:  interviewInterviewer,
		InterviewerTitle: interviewerTitle,
		QuestionsAsked:   interviewQuestions,
		MyAnswers:        interviewAnswers,
		FeedbackReceived: interviewFeedback,
		NextSteps:        interviewNextSteps,
		PreparationNotes: interviewPrep,
	})
	if err != nil {
		return fmt.Errorf("failed to record interview: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Recorded %s interview on %s for %s at %s\n",
		iv.InterviewType, iv.InterviewDate, app.Position, app.Company)
	return nil
}
