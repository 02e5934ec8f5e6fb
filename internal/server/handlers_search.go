package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jordan/job-search-agent/internal/search"
	"github.com/jordan/job-search-agent/internal/types"
)

// SearchRequest is the payload for POST /api/search. Exactly one of query,
// roles or company drives the search; track queues the results for review.
type SearchRequest struct {
	Query    string   `json:"query"`
	Roles    []string `json:"roles"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=50"`

	Remote     bool   `json:"remote"`
	DatePosted string `json:"date_posted"`
	JobType    string `json:"job_type"`

	Track bool `json:"track"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireSearcher(w) {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Query == "" && len(req.Roles) == 0 && req.Company == "" {
		errorResponse(w, http.StatusBadRequest, "query, roles or company is required")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	ctx := r.Context()
	var results []types.JobResult
	var err error
	switch {
	case req.Company != "":
		results, err = s.searcher.SearchByCompany(ctx, req.Company, req.Location, req.Roles, limit)
	case len(req.Roles) > 0:
		results, err = s.searcher.SearchTargetRoles(ctx, req.Roles, req.Location, limit)
	default:
		results, err = s.searcher.SearchJobs(ctx, search.Params{
			Query:      req.Query,
			Location:   req.Location,
			Limit:      limit,
			DatePosted: req.DatePosted,
			JobType:    req.JobType,
			Remote:     req.Remote,
		})
	}
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	results = search.Dedupe(results)
	if results == nil {
		results = []types.JobResult{}
	}

	tracked := 0
	if req.Track {
		tracked = s.trackResults(ctx, results)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
		"tracked": tracked,
	})
}

// trackResults queues search results as status "new" applications,
// skipping listings already in the tracker.
func (s *Server) trackResults(ctx context.Context, results []types.JobResult) int {
	tracked := 0
	for i := range results {
		result := &results[i]

		existing, err := s.store.FindByCompanyPosition(ctx, result.Company, result.Title)
		if err != nil {
			log.Printf("Warning: failed to check for duplicate listing: %v", err)
			continue
		}
		if existing != nil {
			continue
		}

		if _, err := s.store.CreateApplication(ctx, search.ToApplicationInput(result)); err != nil {
			log.Printf("Warning: failed to track %s at %s: %v", result.Title, result.Company, err)
			continue
		}
		tracked++
	}
	return tracked
}
