package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jordan/job-search-agent/internal/types"
)

// MessageRecord is a stored outreach message
type MessageRecord struct {
	ID          string `json:"id"`
	ContactName string `json:"contact_name,omitempty"`
	Company     string `json:"company,omitempty"`
	Kind        string `json:"kind"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
	CreatedAt   string `json:"created_at"`
}

// MessageCreateInput holds the fields for persisting a generated message
type MessageCreateInput struct {
	ContactName string
	Company     string
	Kind        string
	Subject     string
	Body        string
}

// MessageFilters narrow ListMessages results
type MessageFilters struct {
	Company string
	Kind    string
	Limit   int
}

// SaveMessage persists a generated outreach message
func (s *Store) SaveMessage(ctx context.Context, input *MessageCreateInput) (*MessageRecord, error) {
	if input.Body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if !types.IsValidMessageKind(input.Kind) {
		return nil, fmt.Errorf("invalid message kind: %s", input.Kind)
	}

	msg := &MessageRecord{
		ID:          uuid.NewString(),
		ContactName: input.ContactName,
		Company:     input.Company,
		Kind:        input.Kind,
		Subject:     input.Subject,
		Body:        input.Body,
		CreatedAt:   now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, contact_name, company, kind, subject, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ContactName, msg.Company, msg.Kind, msg.Subject, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	return msg, nil
}

// ListMessages returns stored messages matching the filters, newest first
func (s *Store) ListMessages(ctx context.Context, filters *MessageFilters) ([]MessageRecord, error) {
	if filters == nil {
		filters = &MessageFilters{}
	}

	query := `SELECT id, contact_name, company, kind, subject, body, created_at
	          FROM messages WHERE 1=1`
	var args []interface{}

	if filters.Company != "" {
		query += " AND company LIKE ?"
		args = append(args, "%"+filters.Company+"%")
	}
	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []MessageRecord
	for rows.Next() {
		var m MessageRecord
		if err := rows.Scan(&m.ID, &m.ContactName, &m.Company, &m.Kind,
			&m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
