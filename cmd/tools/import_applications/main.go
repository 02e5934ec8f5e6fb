// Command import_applications imports a CSV export of a spreadsheet job
// tracker into the SQLite database.
//
// The first row must be a header; recognized columns (any order) are
// company, position, location, job_url, application_date, status,
// priority, salary_range, notes, recruiter_name, recruiter_email and
// follow_up_date. Rows matching an already tracked company/position
// pair are skipped.
//
// Usage:
//
//	go run cmd/tools/import_applications/main.go applications.csv
//
// The database path comes from the DATABASE_PATH environment variable,
// defaulting to data/job_applications.db.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: import_applications <file.csv>")
		os.Exit(1)
	}

	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = config.DefaultDatabasePath
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open CSV: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	store, err := db.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("=== Application Import ===")
	fmt.Println()

	ctx := context.Background()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read header row: %v\n", err)
		os.Exit(1)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["company"]; !ok {
		fmt.Fprintln(os.Stderr, "ERROR: CSV has no company column")
		os.Exit(1)
	}
	if _, ok := columns["position"]; !ok {
		fmt.Fprintln(os.Stderr, "ERROR: CSV has no position column")
		os.Exit(1)
	}

	created := 0
	existing := 0
	failed := 0
	row := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: %v\n", row, err)
			failed++
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		company := field("company")
		position := field("position")
		if company == "" || position == "" {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: company and position are required\n", row)
			failed++
			continue
		}

		match, err := store.FindByCompanyPosition(ctx, company, position)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: %v\n", row, err)
			failed++
			continue
		}
		if match != nil {
			existing++
			continue
		}

		input := &db.ApplicationCreateInput{
			Company:         company,
			Position:        position,
			Location:        field("location"),
			JobURL:          field("job_url"),
			ApplicationDate: field("application_date"),
			Status:          strings.ToLower(field("status")),
			Priority:        strings.ToLower(field("priority")),
			SalaryRange:     field("salary_range"),
			Notes:           field("notes"),
			RecruiterName:   field("recruiter_name"),
			RecruiterEmail:  field("recruiter_email"),
			FollowUpDate:    field("follow_up_date"),
			Source:          types.SourceManual,
		}
		if input.Status != "" && !types.IsValidStatus(input.Status) {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: invalid status %q\n", row, input.Status)
			failed++
			continue
		}
		if input.Priority != "" && !types.IsValidPriority(input.Priority) {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: invalid priority %q\n", row, input.Priority)
			failed++
			continue
		}

		if _, err := store.CreateApplication(ctx, input); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ row %d: %v\n", row, err)
			failed++
			continue
		}
		fmt.Printf("  ✓ %s at %s\n", position, company)
		created++
	}

	fmt.Println()
	fmt.Println("=== Import Complete ===")
	fmt.Printf("Created:  %d\n", created)
	fmt.Printf("Existing: %d (skipped)\n", existing)
	fmt.Printf("Failed:   %d\n", failed)

	if failed > 0 {
		os.Exit(1)
	}
}
