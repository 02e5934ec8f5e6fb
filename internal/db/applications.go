package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jordan/job-search-agent/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

const applicationColumns = `id, company, position, location, job_url, job_description,
	application_date, status, priority, salary_range, notes,
	recruiter_name, recruiter_email, follow_up_date, interview_date,
	interview_type, interview_notes, rejection_reason, offer_amount,
	source, created_at, updated_at`

// CreateApplication inserts a new tracked application
func (s *Store) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	if input.Company == "" || input.Position == "" {
		return nil, fmt.Errorf("company and position are required")
	}

	status := input.Status
	if status == "" {
		status = types.StatusApplied
	}
	if !types.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !types.IsValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	applicationDate := input.ApplicationDate
	if applicationDate == "" {
		applicationDate = today()
	}

	source := input.Source
	if source == "" {
		source = types.SourceManual
	}

	app := &Application{
		ID:              uuid.NewString(),
		Company:         input.Company,
		Position:        input.Position,
		Location:        input.Location,
		JobURL:          input.JobURL,
		JobDescription:  input.JobDescription,
		ApplicationDate: applicationDate,
		Status:          status,
		Priority:        priority,
		SalaryRange:     input.SalaryRange,
		Notes:           input.Notes,
		RecruiterName:   input.RecruiterName,
		RecruiterEmail:  input.RecruiterEmail,
		FollowUpDate:    input.FollowUpDate,
		Source:          source,
		CreatedAt:       now(),
	}
	app.UpdatedAt = app.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.Company, app.Position, app.Location, app.JobURL, app.JobDescription,
		app.ApplicationDate, app.Status, app.Priority, app.SalaryRange, app.Notes,
		app.RecruiterName, app.RecruiterEmail, app.FollowUpDate, app.InterviewDate,
		app.InterviewType, app.InterviewNotes, app.RejectionReason, app.OfferAmount,
		app.Source, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// GetApplication retrieves an application by ID
func (s *Store) GetApplication(ctx context.Context, id string) (*Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	app, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// FindByCompanyPosition returns the most recent application matching an exact
// company and position pair, or nil when none exists. Used for deduplication.
func (s *Store) FindByCompanyPosition(ctx context.Context, company, position string) (*Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE company = ? AND position = ?
		 ORDER BY created_at DESC LIMIT 1`,
		company, position)

	app, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// ListApplications returns applications matching the filters, newest first
func (s *Store) ListApplications(ctx context.Context, filters *ApplicationFilters) ([]Application, error) {
	if filters == nil {
		filters = &ApplicationFilters{}
	}

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	var args []interface{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Company != "" {
		query += " AND company LIKE ?"
		args = append(args, "%"+filters.Company+"%")
	}
	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	query += " ORDER BY application_date DESC, created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filters.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateApplication applies the non-nil fields of input. Returns false when
// no row matched the ID.
func (s *Store) UpdateApplication(ctx context.Context, id string, input *ApplicationUpdateInput) (bool, error) {
	if input.Status != nil && !types.IsValidStatus(*input.Status) {
		return false, fmt.Errorf("invalid status: %s", *input.Status)
	}
	if input.Priority != nil && !types.IsValidPriority(*input.Priority) {
		return false, fmt.Errorf("invalid priority: %s", *input.Priority)
	}
	if input.InterviewType != nil && *input.InterviewType != "" && !types.IsValidInterviewType(*input.InterviewType) {
		return false, fmt.Errorf("invalid interview type: %s", *input.InterviewType)
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{now()}

	add := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}
	add("company", input.Company)
	add("position", input.Position)
	add("location", input.Location)
	add("job_url", input.JobURL)
	add("job_description", input.JobDescription)
	add("application_date", input.ApplicationDate)
	add("status", input.Status)
	add("priority", input.Priority)
	add("salary_range", input.SalaryRange)
	add("notes", input.Notes)
	add("recruiter_name", input.RecruiterName)
	add("recruiter_email", input.RecruiterEmail)
	add("follow_up_date", input.FollowUpDate)
	add("interview_date", input.InterviewDate)
	add("interview_type", input.InterviewType)
	add("interview_notes", input.InterviewNotes)
	add("rejection_reason", input.RejectionReason)
	add("offer_amount", input.OfferAmount)
	add("source", input.Source)

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE applications SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("failed to update application: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatus moves an application to a new status
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return s.UpdateApplication(ctx, id, &ApplicationUpdateInput{Status: &status})
}

// SetFollowUpDate records when the application should be followed up
func (s *Store) SetFollowUpDate(ctx context.Context, id, date string) (bool, error) {
	return s.UpdateApplication(ctx, id, &ApplicationUpdateInput{FollowUpDate: &date})
}

// DeleteApplication removes an application; interviews cascade
func (s *Store) DeleteApplication(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM applications WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// FollowUpsDue returns active applications whose follow-up date falls within
// the next days days, soonest first
func (s *Store) FollowUpsDue(ctx context.Context, days int) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE follow_up_date != ''
		   AND follow_up_date <= date('now', ?)
		   AND status IN (?, ?)
		 ORDER BY follow_up_date ASC`,
		fmt.Sprintf("+%d days", days), types.StatusApplied, types.StatusUnderReview)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow-ups: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// CountApplicationsOn counts applications submitted on a given date.
// Used to enforce the agent's daily application limit.
func (s *Store) CountApplicationsOn(ctx context.Context, date string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM applications WHERE application_date = ?", date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row scanner) (*Application, error) {
	var a Application
	err := row.Scan(
		&a.ID, &a.Company, &a.Position, &a.Location, &a.JobURL, &a.JobDescription,
		&a.ApplicationDate, &a.Status, &a.Priority, &a.SalaryRange, &a.Notes,
		&a.RecruiterName, &a.RecruiterEmail, &a.FollowUpDate, &a.InterviewDate,
		&a.InterviewType, &a.InterviewNotes, &a.RejectionReason, &a.OfferAmount,
		&a.Source, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
