package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/fetch"
)

func TestNewMetadata(t *testing.T) {
	content := "Senior Engineer posting text"
	meta := NewMetadata(content, "https://jobs.lever.co/acme/123", fetch.PlatformLever)

	assert.Equal(t, "https://jobs.lever.co/acme/123", meta.SourceURL)
	assert.Equal(t, "lever", meta.Platform)
	assert.Equal(t, len(content), meta.ContentLength)
	assert.Len(t, meta.ContentHash, 64)

	fetchedAt, err := time.Parse(time.RFC3339, meta.FetchedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), fetchedAt, time.Minute)
}

func TestNewMetadata_HashIsStable(t *testing.T) {
	a := NewMetadata("same content", "", "")
	b := NewMetadata("same content", "", "")
	c := NewMetadata("different content", "", "")

	assert.Equal(t, a.ContentHash, b.ContentHash)
	assert.NotEqual(t, a.ContentHash, c.ContentHash)
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("posting", "https://acme.com/careers/1", fetch.PlatformGeneric)

	data, err := meta.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://acme.com/careers/1", decoded["source_url"])
	assert.Equal(t, "generic", decoded["platform"])
	assert.Equal(t, float64(len("posting")), decoded["content_length"])
}

func TestMetadata_ToJSON_OmitsEmptySource(t *testing.T) {
	meta := NewMetadata("posting", "", "")

	data, err := meta.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "source_url")
	assert.NotContains(t, string(data), `"platform"`)
}
