package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jordan/job-search-agent/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting could not be fetched.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text could be pulled
	// from the fetched HTML.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// Output filenames written by WriteOutput.
const (
	CleanedTextFilename = "job_posting.cleaned.txt"
	MetadataFilename    = "job_posting.meta.json"
)

// IngestFromFile reads a local job posting (text or markdown), cleans it,
// and returns the cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := CleanText(string(content))
	metadata := NewMetadata(cleanedText, path, "")

	return cleanedText, metadata, nil
}

// IngestFromURL fetches a posting URL, extracts the posting text with
// platform-aware selectors, cleans it, and returns the text with metadata.
// When useBrowser is true and the plain fetch yields too little text, the
// page is re-rendered in headless Chrome before extraction.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[INGEST] URL: %s", urlStr)
		log.Printf("[INGEST] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[INGEST] Fetched HTML: %d bytes", len(result.HTML))
	}

	textContent, err := ExtractPosting(result.HTML, platform)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[INGEST] Extracted text: %d chars", len(textContent))
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[INGEST] Content too short (%d chars < %d), rendering with browser",
				len(textContent), fetch.MinContentLength)
		}

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			// Keep the HTTP content when the browser is unavailable
			if verbose {
				log.Printf("[INGEST] Browser rendering failed: %v", browserErr)
			}
		} else if browserText, extractErr := ExtractPosting(browserHTML, platform); extractErr == nil {
			textContent = browserText
			if verbose {
				log.Printf("[INGEST] Browser extracted text: %d chars", len(textContent))
			}
		}
	}

	cleanedText := CleanText(textContent)
	metadata := NewMetadata(cleanedText, urlStr, platform)

	return cleanedText, metadata, nil
}

// WriteOutput writes the cleaned text and metadata files into outDir.
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, CleanedTextFilename)
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, MetadataFilename)
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
