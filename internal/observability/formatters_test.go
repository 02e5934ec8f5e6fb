package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jordan/job-search-agent/internal/agent"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.JobProfile{
		Company:      "Acme Corp",
		Title:        "Senior Go Engineer",
		Location:     "Remote",
		Skills:       []string{"Go", "Kubernetes", "PostgreSQL"},
		Requirements: []string{"5+ years building backend services"},
	}

	p.PrintJobProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB PROFILE")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Go Engineer")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "5+ years")
}

func TestPrintJobProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintTailored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tailored := &types.TailoredResume{
		Content:         "JORDAN AVERY\n...",
		CoverLetter:     "Dear team,",
		RelevanceScore:  0.82,
		MatchedKeywords: []string{"go", "grpc"},
		MissingKeywords: []string{"terraform"},
	}

	p.PrintTailored(tailored)
	output := buf.String()

	assert.Contains(t, output, "TAILORED RESUME")
	assert.Contains(t, output, "0.82")
	assert.Contains(t, output, "go, grpc")
	assert.Contains(t, output, "terraform")
	assert.Contains(t, output, "Cover letter: generated")
}

func TestPrintCompanyProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CompanyProfile{
		Company: "TechCorp",
		Summary: "Builds logistics software for mid-size retailers.",
		Tone:    "direct and friendly",
		Values:  []string{"Ownership", "Craft"},
	}

	p.PrintCompanyProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "COMPANY RESEARCH")
	assert.Contains(t, output, "TechCorp")
	assert.Contains(t, output, "direct and friendly")
	assert.Contains(t, output, "Ownership")
}

func TestPrintJobResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []types.JobResult{
		{Title: "Backend Engineer", Company: "Acme", Location: "Denver, CO", Via: "LinkedIn"},
		{Title: "Platform Engineer", Company: "Globex"},
	}

	p.PrintJobResults(results)
	output := buf.String()

	assert.Contains(t, output, "JOB SEARCH RESULTS")
	assert.Contains(t, output, "Found 2 listings")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Acme · Denver, CO")
	assert.Contains(t, output, "via LinkedIn")
}

func TestPrintJobResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobResults(nil)

	assert.Contains(t, buf.String(), "No listings found")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stats := &db.Stats{
		TotalApplications: 12,
		TotalInterviews:   3,
		ResponseRate:      25.0,
		StatusCounts: map[string]int{
			types.StatusApplied:            8,
			types.StatusInterviewScheduled: 3,
			types.StatusRejected:           1,
		},
		CompanyCounts: []db.CompanyCount{
			{Company: "Acme", Count: 4},
			{Company: "Globex", Count: 2},
		},
	}

	p.PrintStats(stats)
	output := buf.String()

	assert.Contains(t, output, "JOB SEARCH STATS")
	assert.Contains(t, output, "Applications:  12")
	assert.Contains(t, output, "25.0%")
	assert.Contains(t, output, "applied")
	assert.Contains(t, output, "Acme")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summary := &agent.Summary{
		FollowUpsProcessed:  2,
		JobsFound:           6,
		ApplicationsCreated: 3,
		Errors:              []string{"notion sync: token expired"},
	}

	p.PrintRunSummary(summary)
	output := buf.String()

	assert.Contains(t, output, "DAILY RUN SUMMARY")
	assert.Contains(t, output, "Jobs found:           6")
	assert.Contains(t, output, "Applications created: 3")
	assert.Contains(t, output, "token expired")
}

func TestPrintRunSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(nil)

	assert.Contains(t, buf.String(), "NO RUN RECORDED")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.JobProfile{
		Company: "A Very Long Company Name That Should Be Truncated To Fit",
		Title:   "Senior Staff Principal Distinguished Engineer Level 99",
	}

	p.PrintJobProfile(profile)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
