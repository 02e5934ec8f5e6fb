package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jordan/job-search-agent/internal/types"
)

// AddInterview logs an interview round against an application
func (s *Store) AddInterview(ctx context.Context, input *InterviewCreateInput) (*Interview, error) {
	if input.ApplicationID == "" {
		return nil, fmt.Errorf("application ID is required")
	}
	if input.InterviewType != "" && !types.IsValidInterviewType(input.InterviewType) {
		return nil, fmt.Errorf("invalid interview type: %s", input.InterviewType)
	}

	iv := &Interview{
		ID:               uuid.NewString(),
		ApplicationID:    input.ApplicationID,
		InterviewDate:    input.InterviewDate,
		InterviewType:    input.InterviewType,
		InterviewerName:  input.InterviewerName,
		InterviewerTitle: input.InterviewerTitle,
		QuestionsAsked:   input.QuestionsAsked,
		MyAnswers:        input.MyAnswers,
		FeedbackReceived: input.FeedbackReceived,
		NextSteps:        input.NextSteps,
		PreparationNotes: input.PreparationNotes,
		CreatedAt:        now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interviews (id, application_id, interview_date, interview_type,
		                         interviewer_name, interviewer_title, questions_asked,
		                         my_answers, feedback_received, next_steps,
		                         preparation_notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.ID, iv.ApplicationID, iv.InterviewDate, iv.InterviewType,
		iv.InterviewerName, iv.InterviewerTitle, iv.QuestionsAsked,
		iv.MyAnswers, iv.FeedbackReceived, iv.NextSteps,
		iv.PreparationNotes, iv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add interview: %w", err)
	}

	return iv, nil
}

// ListInterviews returns interviews, newest first. An empty applicationID
// returns interviews across all applications.
func (s *Store) ListInterviews(ctx context.Context, applicationID string) ([]Interview, error) {
	query := `SELECT id, application_id, interview_date, interview_type,
	                 interviewer_name, interviewer_title, questions_asked,
	                 my_answers, feedback_received, next_steps,
	                 preparation_notes, created_at
	          FROM interviews`
	var args []interface{}
	if applicationID != "" {
		query += " WHERE application_id = ?"
		args = append(args, applicationID)
	}
	query += " ORDER BY interview_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.InterviewDate, &iv.InterviewType,
			&iv.InterviewerName, &iv.InterviewerTitle, &iv.QuestionsAsked,
			&iv.MyAnswers, &iv.FeedbackReceived, &iv.NextSteps,
			&iv.PreparationNotes, &iv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}
