package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/schemas"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

const validProfileJSON = `{
	"title": "Senior Backend Engineer",
	"company": "Acme",
	"location": "Remote",
	"requirements": ["5+ years building services", "  ", "5+ years building services"],
	"responsibilities": ["Own the payments platform"],
	"skills": ["golang", "k8s", "Go", "PostgreSQL"],
	"experience_level": "Senior level",
	"keywords": ["Backend", "backend", "distributed systems"]
}`

func TestParseJobDescription_Success(t *testing.T) {
	var capturedPrompt string
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			capturedPrompt = prompt
			return validProfileJSON, nil
		},
	}

	profile, err := ParseJobDescription(context.Background(), client, "We are hiring a senior backend engineer...")
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", profile.Title)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "Remote", profile.Location)
	assert.Equal(t, "senior", profile.ExperienceLevel)
	assert.Equal(t, []string{"5+ years building services"}, profile.Requirements)
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, profile.Skills)
	assert.Equal(t, []string{"backend", "distributed systems"}, profile.Keywords)

	assert.Contains(t, capturedPrompt, "We are hiring a senior backend engineer")
}

func TestParseJobDescription_EmptyText(t *testing.T) {
	_, err := ParseJobDescription(context.Background(), &MockLLMClient{}, "   \n ")
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParseJobDescription_APIError(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	_, err := ParseJobDescription(context.Background(), client, "posting text")
	require.Error(t, err)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestParseJobDescription_UnusableResponse(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "I am unable to read this job description.", nil
		},
	}

	_, err := ParseJobDescription(context.Background(), client, "posting text")
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseJobDescription_LabelledFallback(t *testing.T) {
	labelled := `TITLE: Data Engineer
COMPANY: Initech
LOCATION: Austin, TX
REQUIREMENTS:
- 3+ years with data pipelines
RESPONSIBILITIES:
- Maintain the warehouse
SKILLS:
- python
- SQL
EXPERIENCE_LEVEL: mid`

	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return labelled, nil
		},
	}

	profile, err := ParseJobDescription(context.Background(), client, "posting text")
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", profile.Title)
	assert.Equal(t, "Initech", profile.Company)
	assert.Equal(t, "Austin, TX", profile.Location)
	assert.Equal(t, "mid", profile.ExperienceLevel)
	assert.Equal(t, []string{"3+ years with data pipelines"}, profile.Requirements)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
}

func TestParseJobDescription_MissingCompany(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"title": "Engineer", "requirements": [], "responsibilities": [], "skills": []}`, nil
		},
	}

	_, err := ParseJobDescription(context.Background(), client, "posting text")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	var schemaErr *schemas.ValidationError
	assert.ErrorAs(t, err, &schemaErr)
}
