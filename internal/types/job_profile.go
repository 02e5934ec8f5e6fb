// Package types provides type definitions for structured data used throughout the job-search-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobProfile represents a structured job description extracted from raw text
type JobProfile struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
}

// KeywordSet returns the deduplicated set of matchable terms for the profile:
// skills, requirement phrases, and title words longer than three characters.
func (p *JobProfile) KeywordSet() []string {
	seen := make(map[string]bool)
	var out []string

	add := func(term string) {
		norm := NormalizeKeyword(term)
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		out = append(out, norm)
	}

	for _, s := range p.Skills {
		add(s)
	}
	for _, r := range p.Requirements {
		add(r)
	}
	for _, k := range p.Keywords {
		add(k)
	}
	for _, w := range splitWords(p.Title) {
		if len(w) > 3 {
			add(w)
		}
	}

	return out
}

// TailoredResume is the result of rewriting a resume against a job profile
type TailoredResume struct {
	Content         string   `json:"content"`
	CoverLetter     string   `json:"cover_letter,omitempty"`
	RelevanceScore  float64  `json:"relevance_score"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	MissingKeywords []string `json:"missing_keywords,omitempty"`
}
