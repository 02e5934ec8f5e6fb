package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posting.txt")
	content := "Senior Go Engineer\r\n\r\n\r\nWe   build payment systems.\n- Go\n- Postgres\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\n\nWe build payment systems.\n- Go\n- Postgres", text)
	require.NotNil(t, meta)
	assert.Equal(t, path, meta.SourceURL)
	assert.Empty(t, meta.Platform)
	assert.Equal(t, len(text), meta.ContentLength)
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`
			<html>
				<body>
					<nav>Jobs | Companies</nav>
					<main>
						<h1>Platform Engineer</h1>
						<p>Run our Kubernetes fleet.</p>
					</main>
				</body>
			</html>`))
	}))
	defer server.Close()

	text, meta, err := IngestFromURL(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "Platform Engineer")
	assert.Contains(t, text, "Run our Kubernetes fleet.")
	assert.NotContains(t, text, "Jobs | Companies")

	require.NotNil(t, meta)
	assert.Equal(t, server.URL, meta.SourceURL)
	assert.Equal(t, "generic", meta.Platform)
	assert.Equal(t, len(text), meta.ContentLength)
}

func TestIngestFromURL_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestWriteOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	meta := NewMetadata("cleaned posting", "https://acme.com/jobs/1", "generic")

	require.NoError(t, WriteOutput(outDir, "cleaned posting", meta))

	text, err := os.ReadFile(filepath.Join(outDir, CleanedTextFilename))
	require.NoError(t, err)
	assert.Equal(t, "cleaned posting", string(text))

	metaBytes, err := os.ReadFile(filepath.Join(outDir, MetadataFilename))
	require.NoError(t, err)
	assert.Contains(t, string(metaBytes), `"source_url": "https://acme.com/jobs/1"`)
	assert.Contains(t, string(metaBytes), `"content_length": 15`)
}
