package db

// Application is a tracked job application row
type Application struct {
	ID              string `json:"id"`
	Company         string `json:"company"`
	Position        string `json:"position"`
	Location        string `json:"location,omitempty"`
	JobURL          string `json:"job_url,omitempty"`
	JobDescription  string `json:"job_description,omitempty"`
	ApplicationDate string `json:"application_date"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	SalaryRange     string `json:"salary_range,omitempty"`
	Notes           string `json:"notes,omitempty"`
	RecruiterName   string `json:"recruiter_name,omitempty"`
	RecruiterEmail  string `json:"recruiter_email,omitempty"`
	FollowUpDate    string `json:"follow_up_date,omitempty"`
	InterviewDate   string `json:"interview_date,omitempty"`
	InterviewType   string `json:"interview_type,omitempty"`
	InterviewNotes  string `json:"interview_notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	OfferAmount     string `json:"offer_amount,omitempty"`
	Source          string `json:"source"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// ApplicationCreateInput holds the fields for creating an application.
// Empty Status, Priority and ApplicationDate fall back to defaults.
type ApplicationCreateInput struct {
	Company         string
	Position        string
	Location        string
	JobURL          string
	JobDescription  string
	ApplicationDate string
	Status          string
	Priority        string
	SalaryRange     string
	Notes           string
	RecruiterName   string
	RecruiterEmail  string
	FollowUpDate    string
	Source          string
}

// ApplicationUpdateInput holds optional field updates. Nil fields are left
// unchanged; updated_at is always touched.
type ApplicationUpdateInput struct {
	Company         *string
	Position        *string
	Location        *string
	JobURL          *string
	JobDescription  *string
	ApplicationDate *string
	Status          *string
	Priority        *string
	SalaryRange     *string
	Notes           *string
	RecruiterName   *string
	RecruiterEmail  *string
	FollowUpDate    *string
	InterviewDate   *string
	InterviewType   *string
	InterviewNotes  *string
	RejectionReason *string
	OfferAmount     *string
	Source          *string
}

// ApplicationFilters narrow ListApplications results
type ApplicationFilters struct {
	Status   string
	Company  string
	Priority string
	Limit    int
	Offset   int
}

// List pagination bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)
