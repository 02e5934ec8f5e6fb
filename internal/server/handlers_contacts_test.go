package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

func TestCreateContact(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)

	w := doRequest(t, s, http.MethodPost, "/api/contacts", token, map[string]any{
		"name":            "Sam Rivera",
		"company":         "Acme",
		"role":            "Technical Recruiter",
		"email":           "sam@acme.example",
		"connection_type": "recruiter",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var contact db.Contact
	decodeBody(t, w, &contact)
	require.NotEmpty(t, contact.ID)
	assert.Equal(t, "Sam Rivera", contact.Name)
	assert.Equal(t, types.ConnectionRecruiter, contact.ConnectionType)

	// Missing connection type defaults to recruiter.
	w = doRequest(t, s, http.MethodPost, "/api/contacts", token, map[string]any{
		"name":    "Alex Kim",
		"company": "Globex",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &contact)
	assert.Equal(t, types.ConnectionRecruiter, contact.ConnectionType)
}

func TestCreateContactValidation(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)

	w := doRequest(t, s, http.MethodPost, "/api/contacts", token, map[string]any{"company": "Acme"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Name")

	w = doRequest(t, s, http.MethodPost, "/api/contacts", token, map[string]any{
		"name": "Sam", "company": "Acme", "email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Email")

	w = doRequest(t, s, http.MethodPost, "/api/contacts", token, map[string]any{
		"name": "Sam", "company": "Acme", "connection_type": "stranger",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "ConnectionType")
}

func TestListContacts(t *testing.T) {
	s := newTestServer(t)
	token := authToken(t, s)

	for _, c := range []map[string]any{
		{"name": "Sam Rivera", "company": "Acme", "connection_type": "recruiter"},
		{"name": "Alex Kim", "company": "Acme", "connection_type": "employee"},
		{"name": "Dana Park", "company": "Globex", "connection_type": "hiring_manager"},
	} {
		w := doRequest(t, s, http.MethodPost, "/api/contacts", token, c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var list struct {
		Contacts []db.Contact `json:"contacts"`
		Count    int          `json:"count"`
	}

	w := doRequest(t, s, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &list)
	assert.Equal(t, 3, list.Count)

	w = doRequest(t, s, http.MethodGet, "/api/contacts?company=Acme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &list)
	require.Equal(t, 2, list.Count)
	for _, contact := range list.Contacts {
		assert.Equal(t, "Acme", contact.Company)
	}
}
