package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/job-search-agent/internal/knowledge"
)

// AskRequest is the payload for POST /api/ask.
type AskRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if !s.requireLLM(w) {
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	answer, err := knowledge.Ask(r.Context(), s.llm, s.retriever, req.Question)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, answer)
}
