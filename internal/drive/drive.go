// Package drive uploads generated resume documents to Google Drive.
// Files land in a dedicated folder so tailored resumes are reachable
// from any device during applications and interviews.
package drive

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultFolderName is the Drive folder resumes are uploaded into.
const DefaultFolderName = "Generated Resumes"

const (
	folderMimeType    = "application/vnd.google-apps.folder"
	docxMimeType      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	uploadConcurrency = 3
)

// Service wraps the Drive API for resume uploads.
type Service struct {
	svc *drive.Service
}

// UploadResult describes one uploaded resume.
type UploadResult struct {
	FileID      string    `json:"file_id"`
	Filename    string    `json:"filename"`
	ViewLink    string    `json:"view_link,omitempty"`
	ContentLink string    `json:"content_link,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// UploadRequest names one file to upload and the application it belongs to.
type UploadRequest struct {
	Path     string
	Position string
	Company  string
}

// NewService authenticates against the Drive API using the OAuth app
// credentials file and the cached token file. The token scope is
// drive.file, so the app only sees files it created itself.
func NewService(ctx context.Context, credentialsFile, tokenFile string) (*Service, error) {
	client, err := oauthClient(ctx, credentialsFile, tokenFile)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Service{svc: svc}, nil
}

// EnsureFolder returns the ID of the named Drive folder, creating it
// when it does not exist yet. An empty name means DefaultFolderName.
func (s *Service) EnsureFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = DefaultFolderName
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), folderMimeType)
	list, err := s.svc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := s.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return folder.Id, nil
}

// UploadResume uploads one resume document into the folder.
func (s *Service) UploadResume(ctx context.Context, folderID, path, position, company string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = f.Close() }()

	meta := &drive.File{
		Name:        filepath.Base(path),
		Parents:     []string{folderID},
		Description: fmt.Sprintf("Generated resume for %s at %s", position, company),
	}

	file, err := s.svc.Files.Create(meta).
		Media(f, googleapi.ContentType(docxMimeType)).
		Fields("id, name, webViewLink, webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", meta.Name, err)
	}

	return &UploadResult{
		FileID:      file.Id,
		Filename:    file.Name,
		ViewLink:    file.WebViewLink,
		ContentLink: file.WebContentLink,
		UploadedAt:  time.Now(),
	}, nil
}

// UploadAll uploads the requested files with bounded concurrency.
// Failed uploads are logged and skipped rather than aborting the batch;
// the returned error is non-nil only when the context was cancelled.
func (s *Service) UploadAll(ctx context.Context, folderID string, requests []UploadRequest) ([]*UploadResult, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	results := make([]*UploadResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, req := range requests {
		g.Go(func() error {
			result, err := s.UploadResume(gctx, folderID, req.Path, req.Position, req.Company)
			if err != nil {
				log.Printf("[DRIVE] %v", err)
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	var uploaded []*UploadResult
	for _, result := range results {
		if result != nil {
			uploaded = append(uploaded, result)
		}
	}
	return uploaded, ctx.Err()
}

// FolderLink returns the browser link for a folder.
func (s *Service) FolderLink(ctx context.Context, folderID string) (string, error) {
	folder, err := s.svc.Files.Get(folderID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get folder link: %w", err)
	}
	return folder.WebViewLink, nil
}

// escapeQuery escapes a literal for a Drive search query.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
