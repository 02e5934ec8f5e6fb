package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jordan/job-search-agent/internal/types"
)

// CompanyProfileRecord is a stored company research result
type CompanyProfileRecord struct {
	ID         string      `json:"id"`
	Company    string      `json:"company"`
	Summary    string      `json:"summary"`
	Culture    string      `json:"culture,omitempty"`
	Tone       string      `json:"tone,omitempty"`
	Values     StringArray `json:"values,omitempty"`
	SourceURLs StringArray `json:"source_urls,omitempty"`
	CrawledAt  string      `json:"crawled_at,omitempty"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// ToProfile converts the record into the domain profile
func (r *CompanyProfileRecord) ToProfile() *types.CompanyProfile {
	return &types.CompanyProfile{
		Company:    r.Company,
		Summary:    r.Summary,
		Culture:    r.Culture,
		Tone:       r.Tone,
		Values:     r.Values,
		SourceURLs: r.SourceURLs,
	}
}

// UpsertCompanyProfile creates or refreshes the research profile for a company
func (s *Store) UpsertCompanyProfile(ctx context.Context, profile *types.CompanyProfile) (*CompanyProfileRecord, error) {
	if profile.Company == "" {
		return nil, fmt.Errorf("company is required")
	}

	ts := now()
	record := &CompanyProfileRecord{
		ID:         uuid.NewString(),
		Company:    profile.Company,
		Summary:    profile.Summary,
		Culture:    profile.Culture,
		Tone:       profile.Tone,
		Values:     StringArray(profile.Values),
		SourceURLs: StringArray(profile.SourceURLs),
		CrawledAt:  ts,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO company_profiles (id, company, summary, culture, tone,
		                               values_json, source_urls_json, crawled_at,
		                               created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (company) DO UPDATE SET
		     summary = excluded.summary,
		     culture = excluded.culture,
		     tone = excluded.tone,
		     values_json = excluded.values_json,
		     source_urls_json = excluded.source_urls_json,
		     crawled_at = excluded.crawled_at,
		     updated_at = excluded.updated_at`,
		record.ID, record.Company, record.Summary, record.Culture, record.Tone,
		record.Values, record.SourceURLs, record.CrawledAt,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert company profile: %w", err)
	}

	// Re-read so the caller sees the surviving row's ID and created_at
	return s.GetCompanyProfile(ctx, profile.Company)
}

// GetCompanyProfile retrieves the research profile for a company
func (s *Store) GetCompanyProfile(ctx context.Context, company string) (*CompanyProfileRecord, error) {
	var r CompanyProfileRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company, summary, culture, tone, values_json, source_urls_json,
		        crawled_at, created_at, updated_at
		 FROM company_profiles WHERE company = ?`, company,
	).Scan(&r.ID, &r.Company, &r.Summary, &r.Culture, &r.Tone, &r.Values, &r.SourceURLs,
		&r.CrawledAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	return &r, nil
}

// ListCompanyProfiles returns all stored research profiles, newest first
func (s *Store) ListCompanyProfiles(ctx context.Context) ([]CompanyProfileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company, summary, culture, tone, values_json, source_urls_json,
		        crawled_at, created_at, updated_at
		 FROM company_profiles ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list company profiles: %w", err)
	}
	defer rows.Close()

	var records []CompanyProfileRecord
	for rows.Next() {
		var r CompanyProfileRecord
		if err := rows.Scan(&r.ID, &r.Company, &r.Summary, &r.Culture, &r.Tone,
			&r.Values, &r.SourceURLs, &r.CrawledAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company profile: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
