// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jordan/job-search-agent/internal/agent"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// PrintJobProfile outputs a human-readable summary of the parsed job posting.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.Company))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.Title))
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Requirements) > 0 {
		sb.WriteString("Requirements:\n")
		count := min(len(profile.Requirements), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(profile.Requirements[i], 50)))
		}
		if len(profile.Requirements) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Requirements)-3))
		}
	}

	p.printBox("PARSED JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailored outputs the relevance score and keyword coverage of a
// tailored resume.
func (p *Printer) PrintTailored(tailored *types.TailoredResume) {
	if tailored == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Relevance score: %.2f\n", tailored.RelevanceScore))

	if len(tailored.MatchedKeywords) > 0 {
		matched := strings.Join(tailored.MatchedKeywords, ", ")
		sb.WriteString(fmt.Sprintf("\nMatched:  %s\n", truncate(matched, 45)))
	}
	if len(tailored.MissingKeywords) > 0 {
		missing := strings.Join(tailored.MissingKeywords, ", ")
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", truncate(missing, 45)))
	}
	if tailored.CoverLetter != "" {
		sb.WriteString("\nCover letter: generated\n")
	}

	p.printBox("TAILORED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompanyProfile outputs the researched company profile.
func (p *Printer) PrintCompanyProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.Company))
	if profile.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone:     %s\n", truncate(profile.Tone, 40)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s\n", truncate(profile.Summary, 50)))

	if len(profile.Values) > 0 {
		sb.WriteString("\nValues:\n")
		count := min(len(profile.Values), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Values[i]))
		}
		if len(profile.Values) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Values)-3))
		}
	}

	p.printBox("COMPANY RESEARCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobResults outputs the top search results with source and location.
func (p *Printer) PrintJobResults(results []types.JobResult) {
	if len(results) == 0 {
		p.printBox("JOB SEARCH RESULTS", "No listings found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d listings:\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(r.Title, 45)))
		line := r.Company
		if r.Location != "" {
			line += " · " + r.Location
		}
		sb.WriteString(fmt.Sprintf("    %s\n", truncate(line, 45)))
		if r.Via != "" {
			sb.WriteString(fmt.Sprintf("    via %s\n", truncate(r.Via, 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more listings", len(results)-maxItemsToShow))
	}

	p.printBox("JOB SEARCH RESULTS", sb.String())
}

// PrintStats outputs job search statistics: totals, status breakdown and the
// most applied-to companies.
func (p *Printer) PrintStats(stats *db.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applications:  %d\n", stats.TotalApplications))
	sb.WriteString(fmt.Sprintf("Interviews:    %d\n", stats.TotalInterviews))
	sb.WriteString(fmt.Sprintf("Response rate: %.1f%%\n", stats.ResponseRate))

	if len(stats.StatusCounts) > 0 {
		sb.WriteString("\nBy status:\n")
		for _, status := range types.ValidStatuses {
			if n, ok := stats.StatusCounts[status]; ok {
				sb.WriteString(fmt.Sprintf("  %-20s %d\n", status, n))
			}
		}
	}

	if len(stats.CompanyCounts) > 0 {
		sb.WriteString("\nTop companies:\n")
		count := min(len(stats.CompanyCounts), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := stats.CompanyCounts[i]
			sb.WriteString(fmt.Sprintf("  %-20s %d\n", truncate(c.Company, 20), c.Count))
		}
	}

	p.printBox("JOB SEARCH STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the result of a daily agent run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSummary(summary *agent.Summary) {
	if summary == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO RUN RECORDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Follow-ups processed: %d\n", summary.FollowUpsProcessed))
	sb.WriteString(fmt.Sprintf("Jobs found:           %d\n", summary.JobsFound))
	sb.WriteString(fmt.Sprintf("Applications created: %d\n", summary.ApplicationsCreated))
	sb.WriteString(fmt.Sprintf("Statuses advanced:    %d\n", summary.StatusesAdvanced))
	sb.WriteString(fmt.Sprintf("Synced to Notion:     %d\n", summary.Synced))

	if len(summary.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d steps reported errors:\n", len(summary.Errors)))
		count := min(len(summary.Errors), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", truncate(summary.Errors[i], 48)))
		}
		if len(summary.Errors) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Errors)-3))
		}
	}

	p.printBox("DAILY RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
