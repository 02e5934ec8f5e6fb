package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/jordan/job-search-agent/internal/drive"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a resume to Google Drive",
	Long: `Upload a file or a generated resume from the tracker into the
configured Drive folder. The first run opens an OAuth consent flow
and caches the token for later runs.`,
	RunE: runUpload,
}

var (
	uploadFile        string
	uploadResumeID    string
	uploadPosition    string
	uploadCompany     string
	uploadCredentials string
	uploadToken       string
	uploadFolder      string
)

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path of the file to upload")
	uploadCmd.Flags().StringVar(&uploadResumeID, "resume-id", "", "Generated resume ID from the tracker")
	uploadCmd.Flags().StringVarP(&uploadPosition, "position", "p", "", "Position used in the Drive filename")
	uploadCmd.Flags().StringVarP(&uploadCompany, "company", "c", "", "Company used in the Drive filename")
	uploadCmd.Flags().StringVar(&uploadCredentials, "credentials", "", "OAuth credentials.json path")
	uploadCmd.Flags().StringVar(&uploadToken, "token", "", "Cached OAuth token.json path")
	uploadCmd.Flags().StringVar(&uploadFolder, "folder", "", "Drive folder name")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, _ []string) error {
	if uploadFile == "" && uploadResumeID == "" {
		return fmt.Errorf("--file or --resume-id is required")
	}
	if uploadFile != "" && uploadResumeID != "" {
		return fmt.Errorf("--file and --resume-id are mutually exclusive; provide only one")
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("credentials") {
		cfg.DriveCredentials = uploadCredentials
	}
	if cmd.Flags().Changed("token") {
		cfg.DriveToken = uploadToken
	}
	if cmd.Flags().Changed("folder") {
		cfg.DriveFolder = uploadFolder
	}

	ctx := context.Background()

	if uploadFile != "" {
		result, err := uploadToDrive(ctx, &cfg, uploadFile, uploadPosition, uploadCompany)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "✅ Uploaded %s\n%s\n", result.Filename, result.ViewLink)
		return nil
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	resume, err := store.GetGeneratedResume(ctx, uploadResumeID)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return fmt.Errorf("resume not found: %s", uploadResumeID)
	}
	if resume.OutputPath == "" {
		return fmt.Errorf("resume %s has no output file on disk", uploadResumeID)
	}

	// Prefer the .docx rendition when one sits next to the markdown.
	path := resume.OutputPath
	if docx := strings.TrimSuffix(path, filepath.Ext(path)) + ".docx"; fileExists(docx) {
		path = docx
	}

	result, err := uploadToDrive(ctx, &cfg, path, resume.Position, resume.Company)
	if err != nil {
		return err
	}
	if _, err := store.AttachDriveFile(ctx, resume.ID, result.FileID, result.ViewLink); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record Drive file: %v\n", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Uploaded %s\n%s\n", result.Filename, result.ViewLink)
	return nil
}

// uploadToDrive uploads one file into the configured Drive folder,
// creating the folder on first use.
func uploadToDrive(ctx context.Context, cfg *config.Config, path, position, company string) (*drive.UploadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("no file to upload")
	}

	credentials := cfg.DriveCredentials
	if credentials == "" {
		credentials = "credentials.json"
	}
	token := cfg.DriveToken
	if token == "" {
		token = "token.json"
	}

	service, err := drive.NewService(ctx, credentials, token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Drive: %w", err)
	}

	folderID, err := service.EnsureFolder(ctx, cfg.DriveFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare Drive folder: %w", err)
	}

	result, err := service.UploadResume(ctx, folderID, path, position, company)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Drive: %w", err)
	}
	return result, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
