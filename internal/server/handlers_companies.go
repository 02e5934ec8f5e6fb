package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/research"
)

// ResearchRequest is the payload for POST /api/research.
type ResearchRequest struct {
	Company string `json:"company" validate:"required,min=1"`
	URL     string `json:"url" validate:"required,url"`
}

func (s *Server) handleListCompanyProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.ListCompanyProfiles(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []db.CompanyProfileRecord{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"companies": profiles,
		"count":     len(profiles),
	})
}

func (s *Server) handleGetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetCompanyProfile(r.Context(), r.PathValue("company"))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		errorResponse(w, http.StatusNotFound, "company profile not found")
		return
	}
	jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireLLM(w) {
		return
	}

	var req ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	profile, err := research.Research(r.Context(), s.llm, req.Company, req.URL, nil)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	record, err := s.store.UpsertCompanyProfile(r.Context(), profile)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, record)
}
