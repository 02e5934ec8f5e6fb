package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan/job-search-agent/internal/rendering"
	"github.com/spf13/cobra"
)

var renderDocxCmd = &cobra.Command{
	Use:   "render-docx",
	Short: "Render a markdown resume as .docx",
	Long:  "Convert a markdown resume into a Word document, from a file or from a generated resume stored in the tracker.",
	RunE:  runRenderDocx,
}

var (
	renderIn       string
	renderResumeID string
	renderOut      string
)

func init() {
	renderDocxCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Path to a markdown resume file")
	renderDocxCmd.Flags().StringVar(&renderResumeID, "resume-id", "", "Generated resume ID from the tracker")
	renderDocxCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output .docx path (defaults next to the input)")

	rootCmd.AddCommand(renderDocxCmd)
}

func runRenderDocx(_ *cobra.Command, _ []string) error {
	if renderIn == "" && renderResumeID == "" {
		return fmt.Errorf("--in or --resume-id is required")
	}
	if renderIn != "" && renderResumeID != "" {
		return fmt.Errorf("--in and --resume-id are mutually exclusive; provide only one")
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	var markdown, out string

	if renderIn != "" {
		content, err := os.ReadFile(renderIn)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		markdown = string(content)
		out = strings.TrimSuffix(renderIn, filepath.Ext(renderIn)) + ".docx"
	} else {
		store, err := openStore(&cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		resume, err := store.GetGeneratedResume(context.Background(), renderResumeID)
		if err != nil {
			return fmt.Errorf("failed to load resume: %w", err)
		}
		if resume == nil {
			return fmt.Errorf("resume not found: %s", renderResumeID)
		}
		markdown = resume.Content
		out = filepath.Join(cfg.OutputDir, rendering.ResumeFilename(resume.Company, resume.Position))
	}

	if renderOut != "" {
		out = renderOut
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	doc := rendering.ParseResumeMarkdown(markdown)
	if err := rendering.WriteDocx(doc, out); err != nil {
		return fmt.Errorf("failed to render docx: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Rendered %s\n", out)
	return nil
}
