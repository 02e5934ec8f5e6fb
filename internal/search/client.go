// Package search queries Google Jobs listings through SerpAPI.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jordan/job-search-agent/internal/types"
)

const (
	defaultBaseURL = "https://serpapi.com/search.json"

	// DefaultLocation is used when a search gives no location
	DefaultLocation = "United States"

	// DefaultLimit is the per-search result count
	DefaultLimit = 10

	// maxResults is the SerpAPI per-request cap
	maxResults = 100
)

// Client calls the SerpAPI google_jobs engine.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a search client
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required")
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Params narrow a job search.
type Params struct {
	Query      string
	Location   string
	Limit      int
	DatePosted string // today, 3days, week, month
	JobType    string // FULLTIME, PARTTIME, CONTRACTOR, INTERN
	Remote     bool
}

type searchResponse struct {
	Error       string      `json:"error"`
	JobsResults []jobResult `json:"jobs_results"`
}

type jobResult struct {
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	Description        string `json:"description"`
	ApplyLink          string `json:"apply_link"`
	Via                string `json:"via"`
	DetectedExtensions struct {
		PostedAt     string `json:"posted_at"`
		ScheduleType string `json:"schedule_type"`
		Salary       string `json:"salary"`
	} `json:"detected_extensions"`
}

// SearchJobs runs one google_jobs search.
func (c *Client) SearchJobs(ctx context.Context, params Params) ([]types.JobResult, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxResults {
		limit = maxResults
	}

	location := params.Location
	if location == "" {
		location = DefaultLocation
	}

	q := url.Values{}
	q.Set("engine", "google_jobs")
	q.Set("q", params.Query)
	q.Set("location", location)
	q.Set("hl", "en")
	q.Set("api_key", c.apiKey)
	q.Set("num", strconv.Itoa(limit))
	if chips := buildChips(params); chips != "" {
		q.Set("chips", chips)
	}
	if params.Remote {
		q.Set("ltype", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, snippet(body))
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("search API error: %s", decoded.Error)
	}

	results := make([]types.JobResult, 0, len(decoded.JobsResults))
	for _, job := range decoded.JobsResults {
		if len(results) >= limit {
			break
		}
		results = append(results, types.JobResult{
			Title:        job.Title,
			Company:      job.CompanyName,
			Location:     job.Location,
			Description:  job.Description,
			ApplyLink:    job.ApplyLink,
			Via:          job.Via,
			PostedAt:     job.DetectedExtensions.PostedAt,
			ScheduleType: job.DetectedExtensions.ScheduleType,
			Salary:       job.DetectedExtensions.Salary,
		})
	}
	return results, nil
}

// SearchByCompany searches for the given roles at one company.
func (c *Client) SearchByCompany(ctx context.Context, company, location string, roles []string, limit int) ([]types.JobResult, error) {
	if strings.TrimSpace(company) == "" {
		return nil, fmt.Errorf("company is required")
	}

	query := company
	if len(roles) > 0 {
		parts := make([]string, len(roles))
		for i, role := range roles {
			parts[i] = company + " " + role
		}
		query = strings.Join(parts, " OR ")
	}

	return c.SearchJobs(ctx, Params{Query: query, Location: location, Limit: limit})
}

func buildChips(params Params) string {
	var chips []string
	if params.DatePosted != "" {
		chips = append(chips, "date_posted:"+params.DatePosted)
	}
	if params.JobType != "" {
		chips = append(chips, "employment_type:"+strings.ToUpper(params.JobType))
	}
	return strings.Join(chips, ",")
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
