package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jordan/job-search-agent/internal/types"
)

// CreateContact stores an outreach contact
func (s *Store) CreateContact(ctx context.Context, input *types.Contact) (*Contact, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("contact name is required")
	}
	connType := input.ConnectionType
	if connType == "" {
		connType = types.ConnectionRecruiter
	}
	if !types.IsValidConnectionType(connType) {
		return nil, fmt.Errorf("invalid connection type: %s", connType)
	}

	contact := &Contact{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Company:           input.Company,
		Role:              input.Role,
		Email:             input.Email,
		Location:          input.Location,
		ConnectionType:    connType,
		MutualConnections: input.MutualConnections,
		SharedExperience:  input.SharedExperience,
		CreatedAt:         now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, company, role, email, location,
		                       connection_type, mutual_connections, shared_experience, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.Name, contact.Company, contact.Role, contact.Email,
		contact.Location, contact.ConnectionType, contact.MutualConnections,
		contact.SharedExperience, contact.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *Store) GetContact(ctx context.Context, id string) (*Contact, error) {
	var c Contact
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, company, role, email, location, connection_type,
		        mutual_connections, shared_experience, created_at
		 FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Company, &c.Role, &c.Email, &c.Location,
		&c.ConnectionType, &c.MutualConnections, &c.SharedExperience, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &c, nil
}

// ListContacts returns contacts, optionally filtered by company substring
func (s *Store) ListContacts(ctx context.Context, company string) ([]Contact, error) {
	query := `SELECT id, name, company, role, email, location, connection_type,
	                 mutual_connections, shared_experience, created_at
	          FROM contacts`
	var args []interface{}
	if company != "" {
		query += " WHERE company LIKE ?"
		args = append(args, "%"+company+"%")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Role, &c.Email, &c.Location,
			&c.ConnectionType, &c.MutualConnections, &c.SharedExperience, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
