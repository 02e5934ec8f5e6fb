package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/messaging"
	"github.com/jordan/job-search-agent/internal/types"
)

// ComposeMessageRequest is the payload for POST /api/messages. The contact
// comes either from the store (contact_id) or inline.
type ComposeMessageRequest struct {
	Kind      string         `json:"kind" validate:"required,oneof=connection email follow_up networking"`
	ContactID string         `json:"contact_id"`
	Contact   *types.Contact `json:"contact"`
	TargetJob string         `json:"target_job"`

	// Kind-specific fields
	CandidateContext string `json:"candidate_context"`  // email
	DaysSinceContact int    `json:"days_since_contact"` // follow_up
	Event            string `json:"event"`              // networking
}

func (s *Server) handleComposeMessage(w http.ResponseWriter, r *http.Request) {
	if !s.requireLLM(w) {
		return
	}

	var req ComposeMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	contact, ok := s.resolveContact(w, r, &req)
	if !ok {
		return
	}

	templates := messaging.DefaultTemplates()
	ctx := r.Context()

	var msg *types.Message
	var err error
	switch req.Kind {
	case types.MessageConnection:
		msg, err = messaging.ConnectionRequest(ctx, s.llm, contact, req.TargetJob, templates)
	case types.MessageEmail:
		msg, err = messaging.RecruiterEmail(ctx, s.llm, contact, req.TargetJob, req.CandidateContext, templates)
	case types.MessageFollowUp:
		msg, err = messaging.FollowUpMessage(ctx, s.llm, contact, req.TargetJob, req.DaysSinceContact)
	case types.MessageNetworking:
		msg, err = messaging.NetworkingMessage(ctx, s.llm, contact, req.Event)
	}
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	saved := true
	if _, err := s.store.SaveMessage(ctx, &db.MessageCreateInput{
		ContactName: contact.Name,
		Company:     contact.Company,
		Kind:        msg.Kind,
		Subject:     msg.Subject,
		Body:        msg.Body,
	}); err != nil {
		log.Printf("Warning: failed to save message: %v", err)
		saved = false
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": msg,
		"saved":   saved,
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind := q.Get("kind")
	if kind != "" && !types.IsValidMessageKind(kind) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid message kind: %s", kind))
		return
	}
	limit, err := queryInt(q.Get("limit"), 0)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}

	messages, err := s.store.ListMessages(r.Context(), &db.MessageFilters{
		Company: q.Get("company"),
		Kind:    kind,
		Limit:   limit,
	})
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []db.MessageRecord{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"messages": messages,
		"count":    len(messages),
	})
}

// resolveContact loads the contact for a compose request, preferring the
// stored contact when contact_id is given.
func (s *Server) resolveContact(w http.ResponseWriter, r *http.Request, req *ComposeMessageRequest) (*types.Contact, bool) {
	if req.ContactID != "" {
		stored, err := s.store.GetContact(r.Context(), req.ContactID)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, err.Error())
			return nil, false
		}
		if stored == nil {
			errorResponse(w, http.StatusNotFound, "contact not found")
			return nil, false
		}
		return stored.ToContact(), true
	}

	if req.Contact == nil {
		errorResponse(w, http.StatusBadRequest, "contact or contact_id is required")
		return nil, false
	}
	if req.Contact.ConnectionType == "" {
		req.Contact.ConnectionType = types.ConnectionRecruiter
	}
	if err := s.validate.Struct(req.Contact); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return nil, false
	}
	return req.Contact, true
}
