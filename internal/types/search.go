package types

// JobResult represents a single job listing returned by the search provider
type JobResult struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description,omitempty"`
	ApplyLink    string `json:"apply_link,omitempty"`
	Via          string `json:"via,omitempty"`
	PostedAt     string `json:"posted_at,omitempty"`
	ScheduleType string `json:"schedule_type,omitempty"`
	Salary       string `json:"salary,omitempty"`
}

// DedupeKey identifies a listing across overlapping queries.
func (r *JobResult) DedupeKey() string {
	return NormalizeKeyword(r.Title) + "|" + NormalizeKeyword(r.Company)
}
