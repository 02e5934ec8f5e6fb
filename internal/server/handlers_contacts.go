package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var contact types.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if contact.ConnectionType == "" {
		contact.ConnectionType = types.ConnectionRecruiter
	}
	if err := s.validate.Struct(contact); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	saved, err := s.store.CreateContact(r.Context(), &contact)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context(), r.URL.Query().Get("company"))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []db.Contact{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"contacts": contacts,
		"count":    len(contacts),
	})
}
