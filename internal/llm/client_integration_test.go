package llm

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireGeminiKey skips the test unless a real API key is configured.
func requireGeminiKey(t *testing.T) string {
	t.Helper()
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}
	return key
}

func TestGeminiGenerateContentIntegration(t *testing.T) {
	key := requireGeminiKey(t)
	ctx := context.Background()

	cfg, err := ConfigForProvider(string(ProviderGemini))
	require.NoError(t, err)

	client, err := NewClient(ctx, cfg, key)
	require.NoError(t, err)
	defer client.Close()

	text, err := client.GenerateContent(ctx, "Reply with the single word: ready", TierLite)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(text))
}

func TestGeminiGenerateJSONIntegration(t *testing.T) {
	key := requireGeminiKey(t)
	ctx := context.Background()

	cfg, err := ConfigForProvider(string(ProviderGemini))
	require.NoError(t, err)

	client, err := NewClient(ctx, cfg, key)
	require.NoError(t, err)
	defer client.Close()

	raw, err := client.GenerateJSON(ctx, `Return a JSON object {"status": "ok"} and nothing else.`, TierLite)
	require.NoError(t, err)
	assert.Contains(t, raw, "status")
}
