package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jordan/job-search-agent/internal/agent"
)

// AgentRunRequest optionally overrides the configured agent defaults for
// one run. An empty body runs with the server configuration.
type AgentRunRequest struct {
	TargetRoles  []string `json:"target_roles"`
	Location     string   `json:"location"`
	TopCompanies []string `json:"top_companies"`
	DailyLimit   int      `json:"daily_limit" validate:"omitempty,min=1,max=50"`
	FollowUpDays int      `json:"follow_up_days" validate:"omitempty,min=1,max=30"`
	PerRole      int      `json:"per_role" validate:"omitempty,min=1,max=25"`
}

func (s *Server) handleAgentRun(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAgentRequest(w, r)
	if !ok {
		return
	}

	// Advisory check so callers get a 409 instead of a started run that
	// fails immediately. RunDaily itself refuses concurrent runs.
	if status := s.agent.Status(); status.State != agent.StateIdle && status.State != agent.StateStopped {
		errorResponse(w, http.StatusConflict, "agent is already running")
		return
	}

	opts := s.agentRunOptions(req)
	go func() {
		summary, err := s.agent.RunDaily(context.Background(), opts)
		if err != nil {
			log.Printf("Agent run failed: %v", err)
			return
		}
		log.Printf("Agent run finished: %d found, %d created, %d follow-ups, %d synced",
			summary.JobsFound, summary.ApplicationsCreated, summary.FollowUpsProcessed, summary.Synced)
	}()

	jsonResponse(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleAgentRunStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAgentRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.agentRunOptions(req)
	opts.OnProgress = func(event agent.ProgressEvent) {
		sse.WriteEvent("step", event) //nolint:errcheck
	}

	summary, err := s.agent.RunDaily(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteEvent("complete", summary) //nolint:errcheck
}

func (s *Server) handleAgentStatus(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, s.agent.Status())
}

// decodeAgentRequest parses the optional run override body. A missing body
// is fine; a malformed one is a 400.
func (s *Server) decodeAgentRequest(w http.ResponseWriter, r *http.Request) (*AgentRunRequest, bool) {
	var req AgentRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return nil, false
	}
	return &req, true
}

// agentRunOptions merges the server configuration with per-request
// overrides.
func (s *Server) agentRunOptions(req *AgentRunRequest) agent.RunOptions {
	opts := agent.RunOptions{
		Store:        s.store,
		Client:       s.llm,    // nil skips follow-up drafting
		Notion:       s.syncer, // nil skips the sync step
		TargetRoles:  s.cfg.TargetRoles,
		Location:     s.cfg.Location,
		TopCompanies: s.cfg.TopCompanies,
		DailyLimit:   s.cfg.DailyLimit,
		FollowUpDays: s.cfg.FollowUpDays,
	}
	if s.searcher != nil {
		opts.Searcher = s.searcher
	}

	if len(req.TargetRoles) > 0 {
		opts.TargetRoles = req.TargetRoles
	}
	if req.Location != "" {
		opts.Location = req.Location
	}
	if len(req.TopCompanies) > 0 {
		opts.TopCompanies = req.TopCompanies
	}
	if req.DailyLimit > 0 {
		opts.DailyLimit = req.DailyLimit
	}
	if req.FollowUpDays > 0 {
		opts.FollowUpDays = req.FollowUpDays
	}
	if req.PerRole > 0 {
		opts.PerRole = req.PerRole
	}
	return opts
}
