package types

// Application status values tracked through the job-search lifecycle
const (
	StatusNew                = "new"
	StatusApplied            = "applied"
	StatusUnderReview        = "under_review"
	StatusInterviewScheduled = "interview_scheduled"
	StatusRejected           = "rejected"
	StatusOfferReceived      = "offer_received"
)

// Application priority values
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Interview type values
const (
	InterviewPhone  = "phone"
	InterviewVideo  = "video"
	InterviewOnsite = "onsite"
)

// Application source values
const (
	SourceManual    = "manual"
	SourceJobSearch = "job_search"
	SourceAgent     = "agent"
)

// ValidStatuses lists every accepted application status, in lifecycle order.
var ValidStatuses = []string{
	StatusNew,
	StatusApplied,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusRejected,
	StatusOfferReceived,
}

// ValidPriorities lists every accepted application priority.
var ValidPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// ValidInterviewTypes lists every accepted interview type.
var ValidInterviewTypes = []string{InterviewPhone, InterviewVideo, InterviewOnsite}

// IsValidStatus reports whether s is a known application status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// IsValidInterviewType reports whether t is a known interview type.
func IsValidInterviewType(t string) bool {
	for _, v := range ValidInterviewTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses eligible for follow-up reminders.
var ActiveStatuses = []string{StatusApplied, StatusUnderReview}

// RespondedStatuses are the statuses that count as an employer response
// when computing the response rate.
var RespondedStatuses = []string{StatusInterviewScheduled, StatusRejected, StatusOfferReceived}
