package tailoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestTailorResume(t *testing.T) {
	profile := testProfile()

	var capturedPrompt string
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			capturedPrompt = prompt
			return "```markdown\n# Summary\nSite reliability lead with Go and Terraform.\n```", nil
		},
	}

	result, err := TailorResume(context.Background(), client, sampleResume, profile)
	require.NoError(t, err)

	// fence stripped
	assert.Equal(t, "# Summary\nSite reliability lead with Go and Terraform.", result.Content)
	assert.Greater(t, result.RelevanceScore, 0.0)
	assert.Contains(t, result.MatchedKeywords, "go")
	assert.Contains(t, result.MissingKeywords, "experience running production incidents")

	// prompt carries the job, the ranked sections and the full resume
	assert.Contains(t, capturedPrompt, "Site Reliability Lead")
	assert.Contains(t, capturedPrompt, "Acme")
	assert.Contains(t, capturedPrompt, "relevance")
	assert.Contains(t, capturedPrompt, "jordan@example.com")
}

func TestTailorResume_InputValidation(t *testing.T) {
	client := &MockLLMClient{}

	_, err := TailorResume(context.Background(), client, "  ", testProfile())
	assert.Error(t, err)

	_, err = TailorResume(context.Background(), client, sampleResume, nil)
	assert.Error(t, err)
}

func TestTailorResume_LLMError(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("model overloaded")
		},
	}

	_, err := TailorResume(context.Background(), client, sampleResume, testProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestTailorResume_EmptyResponse(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "```\n```", nil
		},
	}

	_, err := TailorResume(context.Background(), client, sampleResume, testProfile())
	assert.Error(t, err)
}

func TestGenerateCoverLetter_WithCompanyProfile(t *testing.T) {
	var capturedPrompt string
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			capturedPrompt = prompt
			return "Dear Hiring Team,\n\nI am excited to apply.", nil
		},
	}

	company := &types.CompanyProfile{
		Company: "Acme",
		Summary: "Acme builds rockets.",
		Tone:    "direct and warm",
		Values:  []string{"safety", "speed"},
	}

	letter, err := GenerateCoverLetter(context.Background(), client, sampleResume, testProfile(), company)
	require.NoError(t, err)
	assert.Contains(t, letter, "excited to apply")

	assert.Contains(t, capturedPrompt, "Company research:")
	assert.Contains(t, capturedPrompt, "Acme builds rockets.")
	assert.Contains(t, capturedPrompt, "safety, speed")
}

func TestGenerateCoverLetter_WithoutCompanyProfile(t *testing.T) {
	var capturedPrompt string
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			capturedPrompt = prompt
			return "Dear Hiring Team, I am writing to apply.", nil
		},
	}

	_, err := GenerateCoverLetter(context.Background(), client, sampleResume, testProfile(), nil)
	require.NoError(t, err)
	assert.NotContains(t, capturedPrompt, "Company research:")
}

func TestTailoringSuggestions(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `Here are the improvements:
- Add Terraform to the skills section
* Quantify the Acme migration result
• Mention on-call experience in the summary

Those are the main ones.`, nil
		},
	}

	suggestions, err := TailoringSuggestions(context.Background(), client, sampleResume, testProfile())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Add Terraform to the skills section",
		"Quantify the Acme migration result",
		"Mention on-call experience in the summary",
	}, suggestions)
}

func TestStripMarkdownFence(t *testing.T) {
	assert.Equal(t, "plain text", stripMarkdownFence("plain text"))
	assert.Equal(t, "# Resume\nbody", stripMarkdownFence("```markdown\n# Resume\nbody\n```"))
	assert.Equal(t, "# Resume", stripMarkdownFence("```\n# Resume\n```"))
	assert.Equal(t, "```", stripMarkdownFence("```"))
}
