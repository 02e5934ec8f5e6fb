package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

// CreateApplicationRequest is the payload for POST /api/applications.
type CreateApplicationRequest struct {
	Company         string `json:"company" validate:"required,min=1"`
	Position        string `json:"position" validate:"required,min=1"`
	Location        string `json:"location"`
	JobURL          string `json:"job_url" validate:"omitempty,url"`
	JobDescription  string `json:"job_description"`
	ApplicationDate string `json:"application_date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	SalaryRange     string `json:"salary_range"`
	Notes           string `json:"notes"`
	RecruiterName   string `json:"recruiter_name"`
	RecruiterEmail  string `json:"recruiter_email" validate:"omitempty,email"`
	FollowUpDate    string `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	Source          string `json:"source"`
}

// UpdateApplicationRequest is the payload for PUT /api/applications/{id}.
// Nil fields are left unchanged.
type UpdateApplicationRequest struct {
	Company         *string `json:"company"`
	Position        *string `json:"position"`
	Location        *string `json:"location"`
	JobURL          *string `json:"job_url"`
	JobDescription  *string `json:"job_description"`
	ApplicationDate *string `json:"application_date"`
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	SalaryRange     *string `json:"salary_range"`
	Notes           *string `json:"notes"`
	RecruiterName   *string `json:"recruiter_name"`
	RecruiterEmail  *string `json:"recruiter_email" validate:"omitempty,email"`
	FollowUpDate    *string `json:"follow_up_date"`
	InterviewDate   *string `json:"interview_date"`
	InterviewType   *string `json:"interview_type"`
	InterviewNotes  *string `json:"interview_notes"`
	RejectionReason *string `json:"rejection_reason"`
	OfferAmount     *string `json:"offer_amount"`
	Source          *string `json:"source"`
}

// UpdateStatusRequest is the payload for POST /api/applications/{id}/status.
// The extra fields capture details that usually arrive with a status change.
type UpdateStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	InterviewDate   string `json:"interview_date"`
	InterviewType   string `json:"interview_type"`
	InterviewNotes  string `json:"interview_notes"`
	RejectionReason string `json:"rejection_reason"`
	OfferAmount     string `json:"offer_amount"`
	Notes           string `json:"notes"`
}

// AddInterviewRequest is the payload for POST /api/applications/{id}/interviews.
type AddInterviewRequest struct {
	InterviewDate    string `json:"interview_date" validate:"omitempty,datetime=2006-01-02"`
	InterviewType    string `json:"interview_type"`
	InterviewerName  string `json:"interviewer_name"`
	InterviewerTitle string `json:"interviewer_title"`
	QuestionsAsked   string `json:"questions_asked"`
	MyAnswers        string `json:"my_answers"`
	FeedbackReceived string `json:"feedback_received"`
	NextSteps        string `json:"next_steps"`
	PreparationNotes string `json:"preparation_notes"`
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Status != "" && !types.IsValidStatus(req.Status) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", req.Status))
		return
	}
	if req.Priority != "" && !types.IsValidPriority(req.Priority) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid priority: %s", req.Priority))
		return
	}

	app, err := s.store.CreateApplication(r.Context(), &db.ApplicationCreateInput{
		Company:         req.Company,
		Position:        req.Position,
		Location:        req.Location,
		JobURL:          req.JobURL,
		JobDescription:  req.JobDescription,
		ApplicationDate: req.ApplicationDate,
		Status:          req.Status,
		Priority:        req.Priority,
		SalaryRange:     req.SalaryRange,
		Notes:           req.Notes,
		RecruiterName:   req.RecruiterName,
		RecruiterEmail:  req.RecruiterEmail,
		FollowUpDate:    req.FollowUpDate,
		Source:          req.Source,
	})
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &db.ApplicationFilters{
		Status:   q.Get("status"),
		Company:  q.Get("company"),
		Priority: q.Get("priority"),
	}
	if filters.Status != "" && !types.IsValidStatus(filters.Status) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", filters.Status))
		return
	}

	var err error
	if filters.Limit, err = queryInt(q.Get("limit"), 0); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	if filters.Offset, err = queryInt(q.Get("offset"), 0); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid offset parameter")
		return
	}

	apps, err := s.store.ListApplications(r.Context(), filters)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := s.lookupApplication(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Status != nil && !types.IsValidStatus(*req.Status) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", *req.Status))
		return
	}
	if req.Priority != nil && !types.IsValidPriority(*req.Priority) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid priority: %s", *req.Priority))
		return
	}

	found, err := s.store.UpdateApplication(r.Context(), id, &db.ApplicationUpdateInput{
		Company:         req.Company,
		Position:        req.Position,
		Location:        req.Location,
		JobURL:          req.JobURL,
		JobDescription:  req.JobDescription,
		ApplicationDate: req.ApplicationDate,
		Status:          req.Status,
		Priority:        req.Priority,
		SalaryRange:     req.SalaryRange,
		Notes:           req.Notes,
		RecruiterName:   req.RecruiterName,
		RecruiterEmail:  req.RecruiterEmail,
		FollowUpDate:    req.FollowUpDate,
		InterviewDate:   req.InterviewDate,
		InterviewType:   req.InterviewType,
		InterviewNotes:  req.InterviewNotes,
		RejectionReason: req.RejectionReason,
		OfferAmount:     req.OfferAmount,
		Source:          req.Source,
	})
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		errorResponse(w, http.StatusNotFound, "application not found")
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	found, err := s.store.DeleteApplication(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		errorResponse(w, http.StatusNotFound, "application not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if !types.IsValidStatus(req.Status) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", req.Status))
		return
	}
	if req.InterviewType != "" && !types.IsValidInterviewType(req.InterviewType) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid interview type: %s", req.InterviewType))
		return
	}

	input := &db.ApplicationUpdateInput{Status: &req.Status}
	setIfPresent := func(dst **string, value string) {
		if value != "" {
			v := value
			*dst = &v
		}
	}
	setIfPresent(&input.InterviewDate, req.InterviewDate)
	setIfPresent(&input.InterviewType, req.InterviewType)
	setIfPresent(&input.InterviewNotes, req.InterviewNotes)
	setIfPresent(&input.RejectionReason, req.RejectionReason)
	setIfPresent(&input.OfferAmount, req.OfferAmount)
	setIfPresent(&input.Notes, req.Notes)

	found, err := s.store.UpdateApplication(r.Context(), id, input)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		errorResponse(w, http.StatusNotFound, "application not found")
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleAddInterview(w http.ResponseWriter, r *http.Request) {
	app, ok := s.lookupApplication(w, r)
	if !ok {
		return
	}

	var req AddInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.InterviewType != "" && !types.IsValidInterviewType(req.InterviewType) {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid interview type: %s", req.InterviewType))
		return
	}

	interview, err := s.store.AddInterview(r.Context(), &db.InterviewCreateInput{
		ApplicationID:    app.ID,
		InterviewDate:    req.InterviewDate,
		InterviewType:    req.InterviewType,
		InterviewerName:  req.InterviewerName,
		InterviewerTitle: req.InterviewerTitle,
		QuestionsAsked:   req.QuestionsAsked,
		MyAnswers:        req.MyAnswers,
		FeedbackReceived: req.FeedbackReceived,
		NextSteps:        req.NextSteps,
		PreparationNotes: req.PreparationNotes,
	})
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, interview)
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	app, ok := s.lookupApplication(w, r)
	if !ok {
		return
	}

	interviews, err := s.store.ListInterviews(r.Context(), app.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if interviews == nil {
		interviews = []db.Interview{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Statistics(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	days := s.cfg.FollowUpDays
	if days <= 0 {
		days = 3
	}
	var err error
	if days, err = queryInt(r.URL.Query().Get("days"), days); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid days parameter")
		return
	}

	apps, err := s.store.FollowUpsDue(r.Context(), days)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"follow_ups": apps,
		"count":      len(apps),
		"days":       days,
	})
}

// lookupApplication fetches the application named by the {id} path value,
// writing the error response itself when the lookup fails.
func (s *Server) lookupApplication(w http.ResponseWriter, r *http.Request) (*db.Application, bool) {
	app, err := s.store.GetApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if app == nil {
		errorResponse(w, http.StatusNotFound, "application not found")
		return nil, false
	}
	return app, true
}

// queryInt parses an optional integer query parameter.
func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
