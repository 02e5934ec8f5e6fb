package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/jordan/job-search-agent/internal/types"
)

// Stats summarizes the state of the job search
type Stats struct {
	TotalApplications int            `json:"total_applications"`
	StatusCounts      map[string]int `json:"status_counts"`
	CompanyCounts     []CompanyCount `json:"company_counts"`
	MonthlyCounts     []MonthlyCount `json:"monthly_counts"`
	TotalInterviews   int            `json:"total_interviews"`
	ResponseRate      float64        `json:"response_rate"`
}

// CompanyCount pairs a company with its application count
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// MonthlyCount pairs a YYYY-MM month with its application count
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Statistics computes job search statistics. The response rate is the share
// of applications that got any reply (interview, rejection or offer).
func (s *Store) Statistics(ctx context.Context) (*Stats, error) {
	stats := &Stats{StatusCounts: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM applications").Scan(&stats.TotalApplications); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM applications GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	companyRows, err := s.db.QueryContext(ctx,
		`SELECT company, COUNT(*) FROM applications
		 GROUP BY company ORDER BY COUNT(*) DESC, company LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by company: %w", err)
	}
	defer companyRows.Close()
	for companyRows.Next() {
		var cc CompanyCount
		if err := companyRows.Scan(&cc.Company, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan company count: %w", err)
		}
		stats.CompanyCounts = append(stats.CompanyCounts, cc)
	}
	if err := companyRows.Err(); err != nil {
		return nil, err
	}

	monthRows, err := s.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', application_date) AS month, COUNT(*)
		 FROM applications
		 WHERE application_date != ''
		 GROUP BY month ORDER BY month DESC LIMIT 12`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by month: %w", err)
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var month sql.NullString
		var count int
		if err := monthRows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		// strftime yields NULL for dates it cannot parse
		if month.Valid {
			stats.MonthlyCounts = append(stats.MonthlyCounts, MonthlyCount{Month: month.String, Count: count})
		}
	}
	if err := monthRows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interviews").Scan(&stats.TotalInterviews); err != nil {
		return nil, fmt.Errorf("failed to count interviews: %w", err)
	}

	if stats.TotalApplications > 0 {
		responded := 0
		for _, status := range types.RespondedStatuses {
			responded += stats.StatusCounts[status]
		}
		rate := float64(responded) / float64(stats.TotalApplications) * 100
		stats.ResponseRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
