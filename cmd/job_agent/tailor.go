package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/pipeline"
	"github.com/spf13/cobra"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor your resume to a job posting",
	Long: `Run the tailoring workflow: read the base resume, pull the job posting
(file, URL or inline text), extract a structured job profile, fold in
company research, rewrite the resume with a cover letter and save the
outputs. The generated resume is recorded in the tracker database.`,
	RunE: runTailorCmd,
}

var (
	tailorResume      string
	tailorJob         string
	tailorJobURL      string
	tailorJobText     string
	tailorCompanyURL  string
	tailorApplication string
	tailorOutput      string
	tailorDocx        bool
	tailorUpload      bool
	tailorUseBrowser  bool
	tailorAPIKey      string
	tailorProvider    string
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorResume, "resume", "r", "", "Path to the base resume markdown (defaults to config)")
	tailorCmd.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job posting text file")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch the job posting from")
	tailorCmd.Flags().StringVar(&tailorJobText, "job-text", "", "Inline job posting text")
	tailorCmd.Flags().StringVarP(&tailorCompanyURL, "company-url", "c", "", "Company site to crawl for cover letter context")
	tailorCmd.Flags().StringVar(&tailorApplication, "application", "", "Tracked application ID to link the resume to")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Output directory (default from config)")
	tailorCmd.Flags().BoolVar(&tailorDocx, "docx", false, "Additionally render a .docx")
	tailorCmd.Flags().BoolVar(&tailorUpload, "upload", false, "Upload the result to Google Drive after tailoring")
	tailorCmd.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var)")
	tailorCmd.Flags().StringVar(&tailorProvider, "provider", "", "LLM provider: gemini or openrouter")

	rootCmd.AddCommand(tailorCmd)
}

func runTailorCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("provider") {
		cfg.Provider = tailorProvider
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = tailorUseBrowser
	}

	resume := tailorResume
	if resume == "" {
		resume = cfg.Resume
	}
	if resume == "" {
		return fmt.Errorf("--resume is required (or set resume in the config file)")
	}

	jobInputs := 0
	for _, v := range []string{tailorJob, tailorJobURL, tailorJobText} {
		if v != "" {
			jobInputs++
		}
	}
	if jobInputs == 0 {
		return fmt.Errorf("one of --job, --job-url or --job-text is required")
	}
	if jobInputs > 1 {
		return fmt.Errorf("--job, --job-url and --job-text are mutually exclusive; provide only one")
	}

	outputDir := tailorOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if tailorUpload && !tailorDocx {
		// Drive uploads send the .docx rendition.
		tailorDocx = true
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, &cfg, tailorAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if tailorApplication != "" {
		app, err := findApplication(ctx, store, tailorApplication)
		if err != nil {
			return err
		}
		tailorApplication = app.ID
	}

	result, err := pipeline.RunTailor(ctx, pipeline.RunOptions{
		Client:        client,
		Store:         store,
		ResumePath:    resume,
		JobPath:       tailorJob,
		JobURL:        tailorJobURL,
		JobText:       tailorJobText,
		CompanyURL:    tailorCompanyURL,
		OutputDir:     outputDir,
		Docx:          tailorDocx,
		UseBrowser:    cfg.UseBrowser,
		ApplicationID: tailorApplication,
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		p := printer()
		p.PrintJobProfile(result.Profile)
		p.PrintCompanyProfile(result.Company)
		p.PrintTailored(result.Tailored)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Resume: %s\n", result.ResumePath)
	if result.CoverPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Cover letter: %s\n", result.CoverPath)
	}
	if result.DocxPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Docx: %s\n", result.DocxPath)
	}

	if tailorUpload {
		uploaded, err := uploadToDrive(ctx, &cfg, result.DocxPath, result.Profile.Title, result.Profile.Company)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Drive upload failed: %v\n", err)
			return nil
		}
		if result.ResumeID != "" {
			if _, err := store.AttachDriveFile(ctx, result.ResumeID, uploaded.FileID, uploaded.ViewLink); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to record Drive file: %v\n", err)
			}
		}
		_, _ = fmt.Fprintf(os.Stdout, "Drive: %s\n", uploaded.ViewLink)
	}

	return nil
}
