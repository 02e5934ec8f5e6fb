package notion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gnt "github.com/dstotijn/go-notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/db"
)

// rewriteTransport points the Notion client's fixed API host at a local
// test server.
type rewriteTransport struct {
	base *url.URL
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.base.Scheme
	clone.URL.Host = t.base.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base, err := url.Parse(server.URL)
	require.NoError(t, err)

	api := gnt.NewClient("secret-token", gnt.WithHTTPClient(&http.Client{
		Transport: &rewriteTransport{base: base},
	}))
	return &Client{api: api, databaseID: "db-1"}
}

const emptyQueryResponse = `{"object":"list","results":[],"has_more":false,"next_cursor":null}`

func pageJSON(id string) string {
	return fmt.Sprintf(`{
		"object": "page",
		"id": %q,
		"created_time": "2026-08-01T09:00:00.000Z",
		"last_edited_time": "2026-08-20T09:00:00.000Z",
		"parent": {"type": "database_id", "database_id": "db-1"},
		"archived": false,
		"url": "https://www.notion.so/%s",
		"properties": {}
	}`, id, id)
}

func queryHitResponse(id string) string {
	return fmt.Sprintf(`{"object":"list","results":[%s],"has_more":false,"next_cursor":null}`, pageJSON(id))
}

func TestSyncApplicationsCreatesMissingPages(t *testing.T) {
	var queryBodies []string
	var createBodies []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/databases/db-1/query":
			queryBodies = append(queryBodies, string(body))
			fmt.Fprint(w, emptyQueryResponse)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			createBodies = append(createBodies, string(body))
			fmt.Fprint(w, pageJSON("page-new"))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	apps := []db.Application{
		{
			Company:         "Acme",
			Position:        "Platform Engineer",
			Status:          "applied",
			Priority:        "high",
			Location:        "Remote",
			JobURL:          "https://acme.com/jobs/1",
			ApplicationDate: "2026-08-20",
		},
		{
			Company:         "Globex",
			Position:        "Backend Engineer",
			Status:          "under_review",
			Priority:        "medium",
			ApplicationDate: "2026-08-18",
		},
	}

	result, err := client.SyncApplications(context.Background(), apps)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Synced())

	require.Len(t, queryBodies, 2)
	assert.Contains(t, queryBodies[0], `"Position"`)
	assert.Contains(t, queryBodies[0], "Platform Engineer")
	assert.Contains(t, queryBodies[0], `"Company"`)
	assert.Contains(t, queryBodies[0], "Acme")

	require.Len(t, createBodies, 2)
	assert.Contains(t, createBodies[0], `"database_id":"db-1"`)
	assert.Contains(t, createBodies[0], `"content":"Platform Engineer"`)
	assert.Contains(t, createBodies[0], `"name":"Applied"`)
	assert.Contains(t, createBodies[0], `"name":"High"`)
	assert.Contains(t, createBodies[0], "https://acme.com/jobs/1")
	assert.Contains(t, createBodies[0], "2026-08-20")
	assert.Contains(t, createBodies[1], `"name":"Under Review"`)
}

func TestSyncApplicationsUpdatesExistingPage(t *testing.T) {
	var patchPath string
	var patchBody string
	createCalls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/databases/db-1/query":
			fmt.Fprint(w, queryHitResponse("page-9"))
		case r.Method == http.MethodPatch:
			patchPath = r.URL.Path
			patchBody = string(body)
			fmt.Fprint(w, pageJSON("page-9"))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			createCalls++
			fmt.Fprint(w, pageJSON("page-new"))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	apps := []db.Application{{
		Company:         "Acme",
		Position:        "Platform Engineer",
		Status:          "interview_scheduled",
		Priority:        "high",
		ApplicationDate: "2026-08-20",
	}}

	result, err := client.SyncApplications(context.Background(), apps)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, createCalls)
	assert.Equal(t, "/v1/pages/page-9", patchPath)
	assert.Contains(t, patchBody, `"name":"Interview Scheduled"`)
}

func TestSyncApplicationsCollectsErrors(t *testing.T) {
	createCalls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/databases/db-1/query":
			fmt.Fprint(w, emptyQueryResponse)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			createCalls++
			if createCalls == 1 {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"object":"error","status":400,"code":"validation_error","message":"Company is not a property"}`)
				return
			}
			fmt.Fprint(w, pageJSON("page-new"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	apps := []db.Application{
		{Company: "Acme", Position: "Platform Engineer", Status: "applied"},
		{Company: "Globex", Position: "Backend Engineer", Status: "applied"},
	}

	result, err := client.SyncApplications(context.Background(), apps)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Synced())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "Platform Engineer")
	assert.Contains(t, result.Errors[0].Error(), "Acme")
	assert.Contains(t, result.Errors[0].Error(), "failed to create page")
}

func TestSyncApplicationsCancelledContext(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := client.SyncApplications(ctx, []db.Application{
		{Company: "Acme", Position: "Platform Engineer"},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Synced())
}

func TestPing(t *testing.T) {
	var queryBody string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		queryBody = string(body)
		fmt.Fprint(w, emptyQueryResponse)
	}))

	err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Contains(t, queryBody, `"page_size":1`)
}

func TestPingUnreachable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	}))

	err := client.Ping(context.Background())
	require.Error(t, err)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Contains(t, syncErr.Message, "failed to reach notion database")
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "db-1")
	assert.Error(t, err)

	_, err = NewClient("secret-token", "")
	assert.Error(t, err)

	client, err := NewClient("secret-token", "db-1")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestBuildPageProperties(t *testing.T) {
	app := db.Application{
		Company:         "Acme",
		Position:        "Platform Engineer",
		Status:          "applied",
		Priority:        "high",
		Location:        "Remote",
		JobURL:          "https://acme.com/jobs/1",
		ApplicationDate: "2026-08-20",
	}

	props := buildPageProperties(app)

	require.Contains(t, props, "Position")
	assert.Equal(t, "Platform Engineer", props["Position"].Title[0].Text.Content)
	assert.Equal(t, "Acme", props["Company"].RichText[0].Text.Content)
	assert.Equal(t, "Applied", props["Status"].Select.Name)
	assert.Equal(t, "High", props["Priority"].Select.Name)
	assert.Equal(t, "Remote", props["Location"].RichText[0].Text.Content)
	require.NotNil(t, props["URL"].URL)
	assert.Equal(t, "https://acme.com/jobs/1", *props["URL"].URL)
	require.Contains(t, props, "Applied")
	assert.Equal(t, 2026, props["Applied"].Date.Start.Year())
}

func TestBuildPagePropertiesOmitsEmptyFields(t *testing.T) {
	props := buildPageProperties(db.Application{Company: "Acme", Position: "Engineer"})

	assert.Contains(t, props, "Position")
	assert.Contains(t, props, "Company")
	assert.NotContains(t, props, "Status")
	assert.NotContains(t, props, "Priority")
	assert.NotContains(t, props, "Location")
	assert.NotContains(t, props, "URL")
	assert.NotContains(t, props, "Applied")
}

func TestSelectLabel(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "single word", value: "applied", expected: "Applied"},
		{name: "two words", value: "under_review", expected: "Under Review"},
		{name: "interview", value: "interview_scheduled", expected: "Interview Scheduled"},
		{name: "offer", value: "offer_received", expected: "Offer Received"},
		{name: "priority", value: "high", expected: "High"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, selectLabel(tc.value))
		})
	}
}

func TestAppliedDate(t *testing.T) {
	d := appliedDate("2026-08-20")
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Start.Year())

	assert.Nil(t, appliedDate(""))
	assert.Nil(t, appliedDate("not-a-date"))
}
