package types

// CompanyProfile captures researched company context used to personalize
// cover letters and outreach messages
type CompanyProfile struct {
	Company    string   `json:"company"`
	Summary    string   `json:"summary"`
	Culture    string   `json:"culture,omitempty"`
	Tone       string   `json:"tone,omitempty"`
	Values     []string `json:"values,omitempty"`
	SourceURLs []string `json:"source_urls,omitempty"`
}
