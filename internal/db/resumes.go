package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// GeneratedResume records a tailored resume produced for an application
type GeneratedResume struct {
	ID             string  `json:"id"`
	ApplicationID  *string `json:"application_id,omitempty"`
	Company        string  `json:"company"`
	Position       string  `json:"position"`
	Content        string  `json:"content"`
	CoverLetter    string  `json:"cover_letter,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	OutputPath     string  `json:"output_path,omitempty"`
	DriveFileID    string  `json:"drive_file_id,omitempty"`
	DriveLink      string  `json:"drive_link,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ResumeCreateInput holds the fields for recording a generated resume
type ResumeCreateInput struct {
	ApplicationID  *string
	Company        string
	Position       string
	Content        string
	CoverLetter    string
	RelevanceScore float64
	OutputPath     string
}

// SaveGeneratedResume records a tailoring result
func (s *Store) SaveGeneratedResume(ctx context.Context, input *ResumeCreateInput) (*GeneratedResume, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("resume content is required")
	}

	resume := &GeneratedResume{
		ID:             uuid.NewString(),
		ApplicationID:  input.ApplicationID,
		Company:        input.Company,
		Position:       input.Position,
		Content:        input.Content,
		CoverLetter:    input.CoverLetter,
		RelevanceScore: input.RelevanceScore,
		OutputPath:     input.OutputPath,
		CreatedAt:      now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generated_resumes (id, application_id, company, position, content,
		                                cover_letter, relevance_score, output_path,
		                                drive_file_id, drive_link, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', '', ?)`,
		resume.ID, resume.ApplicationID, resume.Company, resume.Position, resume.Content,
		resume.CoverLetter, resume.RelevanceScore, resume.OutputPath, resume.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save generated resume: %w", err)
	}

	return resume, nil
}

// GetGeneratedResume retrieves a generated resume by ID
func (s *Store) GetGeneratedResume(ctx context.Context, id string) (*GeneratedResume, error) {
	var r GeneratedResume
	err := s.db.QueryRowContext(ctx,
		`SELECT id, application_id, company, position, content, cover_letter,
		        relevance_score, output_path, drive_file_id, drive_link, created_at
		 FROM generated_resumes WHERE id = ?`, id,
	).Scan(&r.ID, &r.ApplicationID, &r.Company, &r.Position, &r.Content, &r.CoverLetter,
		&r.RelevanceScore, &r.OutputPath, &r.DriveFileID, &r.DriveLink, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generated resume: %w", err)
	}
	return &r, nil
}

// ListGeneratedResumes returns generated resumes, newest first
func (s *Store) ListGeneratedResumes(ctx context.Context, limit int) ([]GeneratedResume, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, application_id, company, position, content, cover_letter,
		        relevance_score, output_path, drive_file_id, drive_link, created_at
		 FROM generated_resumes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated resumes: %w", err)
	}
	defer rows.Close()

	var resumes []GeneratedResume
	for rows.Next() {
		var r GeneratedResume
		if err := rows.Scan(&r.ID, &r.ApplicationID, &r.Company, &r.Position, &r.Content,
			&r.CoverLetter, &r.RelevanceScore, &r.OutputPath, &r.DriveFileID,
			&r.DriveLink, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// AttachDriveFile records the Drive upload for a generated resume
func (s *Store) AttachDriveFile(ctx context.Context, id, fileID, link string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE generated_resumes SET drive_file_id = ?, drive_link = ? WHERE id = ?",
		fileID, link, id)
	if err != nil {
		return false, fmt.Errorf("failed to attach drive file: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}
