package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/pipeline"
)

// TailorRequest is the payload for POST /api/tailor. The resume comes
// inline; the job posting comes from a URL or inline text.
type TailorRequest struct {
	ResumeText    string `json:"resume_text" validate:"required,min=1"`
	JobURL        string `json:"job_url" validate:"omitempty,url"`
	JobText       string `json:"job_text"`
	CompanyURL    string `json:"company_url" validate:"omitempty,url"`
	Docx          bool   `json:"docx"`
	UseBrowser    bool   `json:"use_browser"`
	ApplicationID string `json:"application_id"`
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if !s.requireLLM(w) {
		return
	}

	var req TailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.JobURL == "" && req.JobText == "" {
		errorResponse(w, http.StatusBadRequest, "job_url or job_text is required")
		return
	}

	if req.ApplicationID != "" {
		app, err := s.store.GetApplication(r.Context(), req.ApplicationID)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		if app == nil {
			errorResponse(w, http.StatusNotFound, "application not found")
			return
		}
	}

	result, err := pipeline.RunTailor(r.Context(), pipeline.RunOptions{
		Client:        s.llm,
		Store:         s.store,
		ResumeText:    req.ResumeText,
		JobURL:        req.JobURL,
		JobText:       req.JobText,
		CompanyURL:    req.CompanyURL,
		OutputDir:     s.cfg.OutputDir,
		Docx:          req.Docx,
		UseBrowser:    req.UseBrowser,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r.URL.Query().Get("limit"), 0)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}

	resumes, err := s.store.ListGeneratedResumes(r.Context(), limit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resumes == nil {
		resumes = []db.GeneratedResume{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.store.GetGeneratedResume(r.Context(), r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}
	jsonResponse(w, http.StatusOK, resume)
}
