package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jordan/job-search-agent/internal/fetch"
)

// Metadata records where ingested text came from.
type Metadata struct {
	SourceURL     string `json:"source_url,omitempty"`
	Platform      string `json:"platform,omitempty"`
	FetchedAt     string `json:"fetched_at"` // RFC3339
	ContentLength int    `json:"content_length"`
	ContentHash   string `json:"content_hash"` // SHA256 hex digest
}

// NewMetadata builds metadata for cleaned content. sourceURL may be a URL or
// a local file path; platform is empty for local files.
func NewMetadata(content string, sourceURL string, platform fetch.Platform) *Metadata {
	return &Metadata{
		SourceURL:     sourceURL,
		Platform:      string(platform),
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
		ContentLength: len(content),
		ContentHash:   computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
