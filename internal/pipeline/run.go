// Package pipeline orchestrates the resume tailoring workflow: job posting
// in, tailored resume, cover letter and saved outputs out.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/ingestion"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/parsing"
	"github.com/jordan/job-search-agent/internal/rendering"
	"github.com/jordan/job-search-agent/internal/research"
	"github.com/jordan/job-search-agent/internal/tailoring"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/jordan/job-search-agent/internal/validation"
)

const (
	totalSteps       = 6
	DefaultOutputDir = "output"
)

// ProgressEvent reports a workflow step transition.
type ProgressEvent struct {
	Step   int    `json:"step"`
	Total  int    `json:"total"`
	Name   string `json:"name"`
	Status string `json:"status"` // started, completed, failed
	Detail string `json:"detail,omitempty"`
}

// ProgressCallback is called on every step transition.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs for a tailoring run.
type RunOptions struct {
	Client llm.Client // required
	Store  *db.Store  // optional; outputs are not persisted when nil

	// Resume input: a markdown file path or inline text.
	ResumePath string
	ResumeText string

	// Job input: exactly one of file path, URL or inline text.
	JobPath string
	JobURL  string
	JobText string

	// CompanyURL seeds a company research crawl whose profile shapes
	// the cover letter. Without it a previously stored profile is used
	// when one exists.
	CompanyURL string

	OutputDir     string // default "output"
	Docx          bool   // additionally render a .docx
	UseBrowser    bool   // headless fallback for JS-heavy boards
	ApplicationID string // links the saved resume to a tracked application

	Verbose    bool
	OnProgress ProgressCallback
}

// Result carries everything a tailoring run produced.
type Result struct {
	Profile    *types.JobProfile     `json:"profile"`
	Company    *types.CompanyProfile `json:"company_profile,omitempty"`
	Tailored   *types.TailoredResume `json:"tailored"`
	ResumeID   string                `json:"resume_id,omitempty"`
	ResumePath string                `json:"resume_path,omitempty"`
	CoverPath  string                `json:"cover_letter_path,omitempty"`
	DocxPath   string                `json:"docx_path,omitempty"`

	// Lint carries advisory style findings on the tailored content.
	Lint []validation.Violation `json:"lint,omitempty"`
}

// emitProgress calls the progress callback if configured.
func emitProgress(opts *RunOptions, step int, name, status, detail string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:   step,
			Total:  totalSteps,
			Name:   name,
			Status: status,
			Detail: detail,
		})
	}
}

// RunTailor executes the tailoring workflow: load the resume, acquire the
// job posting text, extract a structured profile, research the company,
// rewrite the resume with a cover letter, and save the outputs.
func RunTailor(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("LLM client is required")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}

	fmt.Printf("🚀 Starting resume tailoring\n")

	// Step 1: Load resume
	fmt.Printf("Step 1/%d: Loading resume...\n", totalSteps)
	emitProgress(&opts, 1, "resume", "started", "")
	resume, err := loadResume(&opts)
	if err != nil {
		emitProgress(&opts, 1, "resume", "failed", err.Error())
		return nil, err
	}
	emitProgress(&opts, 1, "resume", "completed", fmt.Sprintf("%d characters", len(resume)))

	// Step 2: Acquire job posting text
	fmt.Printf("Step 2/%d: Reading job posting...\n", totalSteps)
	emitProgress(&opts, 2, "job posting", "started", "")
	jobText, source, err := loadJobText(ctx, &opts)
	if err != nil {
		emitProgress(&opts, 2, "job posting", "failed", err.Error())
		return nil, err
	}
	emitProgress(&opts, 2, "job posting", "completed", source)

	// Step 3: Extract structured job profile
	fmt.Printf("Step 3/%d: Extracting job profile...\n", totalSteps)
	emitProgress(&opts, 3, "job profile", "started", "")
	profile, err := parsing.ParseJobDescription(ctx, opts.Client, jobText)
	if err != nil {
		emitProgress(&opts, 3, "job profile", "failed", err.Error())
		return nil, fmt.Errorf("failed to extract job profile: %w", err)
	}
	emitProgress(&opts, 3, "job profile", "completed",
		fmt.Sprintf("%s at %s", profile.Title, profile.Company))
	if opts.Verbose {
		fmt.Printf("  Position: %s\n  Company: %s\n  Skills: %d\n",
			profile.Title, profile.Company, len(profile.Skills))
	}

	// Step 4: Company research (never fails the run)
	fmt.Printf("Step 4/%d: Researching company...\n", totalSteps)
	emitProgress(&opts, 4, "research", "started", "")
	company := researchCompany(ctx, &opts, profile)
	if company != nil {
		emitProgress(&opts, 4, "research", "completed", company.Company)
	} else {
		emitProgress(&opts, 4, "research", "completed", "no company profile")
	}

	// Step 5: Tailor resume and draft cover letter
	fmt.Printf("Step 5/%d: Tailoring resume...\n", totalSteps)
	emitProgress(&opts, 5, "tailoring", "started", "")
	tailored, err := tailoring.TailorResume(ctx, opts.Client, resume, profile)
	if err != nil {
		emitProgress(&opts, 5, "tailoring", "failed", err.Error())
		return nil, fmt.Errorf("failed to tailor resume: %w", err)
	}
	letter, err := tailoring.GenerateCoverLetter(ctx, opts.Client, tailored.Content, profile, company)
	if err != nil {
		fmt.Printf("⚠️  Warning: cover letter generation failed: %v\n", err)
	} else {
		tailored.CoverLetter = letter
	}
	emitProgress(&opts, 5, "tailoring", "completed",
		fmt.Sprintf("relevance %.1f%%", tailored.RelevanceScore))

	lint := validation.CheckResume(tailored.Content, nil)
	if len(lint) > 0 {
		fmt.Printf("⚠️  %d style warning(s) in tailored resume\n", len(lint))
		if opts.Verbose {
			for _, v := range lint {
				fmt.Printf("  %s\n", v.Details)
			}
		}
	}

	// Step 6: Save outputs
	fmt.Printf("Step 6/%d: Saving outputs...\n", totalSteps)
	emitProgress(&opts, 6, "save", "started", "")
	result := &Result{Profile: profile, Company: company, Tailored: tailored, Lint: lint}
	if err := saveOutputs(ctx, &opts, result); err != nil {
		emitProgress(&opts, 6, "save", "failed", err.Error())
		return nil, err
	}
	emitProgress(&opts, 6, "save", "completed", result.ResumePath)

	fmt.Printf("✅ Tailored resume for %s at %s (relevance %.1f%%)\n",
		profile.Title, profile.Company, tailored.RelevanceScore)
	return result, nil
}

func loadResume(opts *RunOptions) (string, error) {
	if opts.ResumeText != "" {
		return opts.ResumeText, nil
	}
	if opts.ResumePath == "" {
		return "", fmt.Errorf("a resume file or resume text is required")
	}
	content, err := os.ReadFile(opts.ResumePath)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return "", fmt.Errorf("resume file %s is empty", opts.ResumePath)
	}
	return string(content), nil
}

// loadJobText returns the cleaned posting text and a short source label.
func loadJobText(ctx context.Context, opts *RunOptions) (string, string, error) {
	switch {
	case opts.JobText != "":
		return ingestion.CleanText(opts.JobText), "inline text", nil
	case opts.JobPath != "":
		text, _, err := ingestion.IngestFromFile(opts.JobPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read job posting: %w", err)
		}
		return text, opts.JobPath, nil
	case opts.JobURL != "":
		text, meta, err := ingestion.IngestFromURL(ctx, opts.JobURL, opts.UseBrowser, opts.Verbose)
		if err != nil {
			return "", "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return text, fmt.Sprintf("%s (%s)", opts.JobURL, meta.Platform), nil
	default:
		return "", "", fmt.Errorf("a job posting file, URL or text is required")
	}
}

// researchCompany crawls the company site when a seed URL is given, else
// falls back to a stored profile. Failures degrade to no profile.
func researchCompany(ctx context.Context, opts *RunOptions, profile *types.JobProfile) *types.CompanyProfile {
	if opts.CompanyURL != "" {
		if profile.Company == "" {
			fmt.Printf("⚠️  Warning: company name unknown, skipping research\n")
			return nil
		}
		company, err := research.Research(ctx, opts.Client, profile.Company, opts.CompanyURL,
			&research.Options{Verbose: opts.Verbose})
		if err != nil {
			fmt.Printf("⚠️  Warning: company research failed: %v\n", err)
			return nil
		}
		if opts.Store != nil {
			if _, err := opts.Store.UpsertCompanyProfile(ctx, company); err != nil {
				fmt.Printf("⚠️  Warning: failed to store company profile: %v\n", err)
			}
		}
		return company
	}

	if opts.Store != nil && profile.Company != "" {
		record, err := opts.Store.GetCompanyProfile(ctx, profile.Company)
		if err == nil && record != nil {
			if opts.Verbose {
				fmt.Printf("  Using stored research for %s\n", profile.Company)
			}
			return record.ToProfile()
		}
	}
	return nil
}

func saveOutputs(ctx context.Context, opts *RunOptions, result *Result) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	profile := result.Profile
	tailored := result.Tailored
	stem := strings.TrimSuffix(rendering.ResumeFilename(profile.Company, profile.Title), ".docx")

	result.ResumePath = filepath.Join(opts.OutputDir, stem+".md")
	if err := os.WriteFile(result.ResumePath, []byte(tailored.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write tailored resume: %w", err)
	}

	if tailored.CoverLetter != "" {
		coverStem := strings.TrimSuffix(stem, "_resume") + "_cover_letter"
		result.CoverPath = filepath.Join(opts.OutputDir, coverStem+".md")
		if err := os.WriteFile(result.CoverPath, []byte(tailored.CoverLetter), 0o644); err != nil {
			return fmt.Errorf("failed to write cover letter: %w", err)
		}
	}

	if opts.Docx {
		doc := rendering.ParseResumeMarkdown(tailored.Content)
		result.DocxPath = filepath.Join(opts.OutputDir, stem+".docx")
		if err := rendering.WriteDocx(doc, result.DocxPath); err != nil {
			return fmt.Errorf("failed to render docx: %w", err)
		}
	}

	if opts.Store != nil {
		input := &db.ResumeCreateInput{
			Company:        profile.Company,
			Position:       profile.Title,
			Content:        tailored.Content,
			CoverLetter:    tailored.CoverLetter,
			RelevanceScore: tailored.RelevanceScore,
			OutputPath:     result.ResumePath,
		}
		if opts.ApplicationID != "" {
			input.ApplicationID = &opts.ApplicationID
		}
		saved, err := opts.Store.SaveGeneratedResume(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to record generated resume: %w", err)
		}
		result.ResumeID = saved.ID
	}

	return nil
}
