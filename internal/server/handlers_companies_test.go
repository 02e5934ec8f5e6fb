package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/llm"
)

const companySeedPage = `<html><body>
<main><p>Acme builds delivery robots for city logistics and ships weekly.</p></main>
</body></html>`

func TestResearchEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, companySeedPage)
	}))
	t.Cleanup(site.Close)

	s.llm = &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"company": "Acme",
				"summary": "Acme builds delivery robots for city logistics.",
				"culture": "Ships weekly.",
				"tone": "direct",
				"values": ["Speed"]
			}`, nil
		},
	}

	w := doRequest(t, s, http.MethodPost, "/api/research", token, map[string]any{
		"company": "Acme",
		"url":     site.URL,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record db.CompanyProfileRecord
	decodeBody(t, w, &record)
	require.NotEmpty(t, record.ID)
	assert.Equal(t, "Acme", record.Company)
	assert.Equal(t, "Acme builds delivery robots for city logistics.", record.Summary)
	assert.Equal(t, "direct", record.Tone)

	// The stored profile is readable through the company routes.
	w = doRequest(t, s, http.MethodGet, "/api/companies/Acme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched db.CompanyProfileRecord
	decodeBody(t, w, &fetched)
	assert.Equal(t, record.ID, fetched.ID)

	var list struct {
		Companies []db.CompanyProfileRecord `json:"companies"`
		Count     int                       `json:"count"`
	}
	w = doRequest(t, s, http.MethodGet, "/api/companies", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &list)
	assert.Equal(t, 1, list.Count)
}

func TestResearchValidation(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)
	s.llm = &MockLLMClient{}

	w := doRequest(t, s, http.MethodPost, "/api/research", token, map[string]any{"company": "Acme"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "URL")

	w = doRequest(t, s, http.MethodPost, "/api/research", token, map[string]any{
		"company": "Acme", "url": "not-a-url",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "URL")

	w = doRequest(t, s, http.MethodPost, "/api/research", token, map[string]any{
		"url": "https://acme.example",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Company")
}

func TestResearchFetchFailure(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)
	s.llm = &MockLLMClient{}

	site := httptest.NewServer(http.NotFoundHandler())
	url := site.URL
	site.Close()

	w := doRequest(t, s, http.MethodPost, "/api/research", token, map[string]any{
		"company": "Acme", "url": url,
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorMessage(t, w), "failed to fetch seed page")
}

func TestCompanyProfileNotFound(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)

	w := doRequest(t, s, http.MethodGet, "/api/companies/Unknown", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "company profile not found", errorMessage(t, w))
}
