// Package validation checks generated resume text for style problems.
package validation

// Violation describes a single style problem found in resume text.
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	LineNumber int    `json:"line_number"`
}

// Options adjusts what CheckResume flags.
type Options struct {
	// MaxLineChars overrides DefaultMaxLineChars when positive.
	MaxLineChars int
	// ExtraPhrases are flagged in addition to ClichePhrases.
	ExtraPhrases []string
}

// CheckResume runs every style check against tailored resume markdown.
// Violations are advisory; callers report them and keep going.
func CheckResume(content string, opts *Options) []Violation {
	maxChars := DefaultMaxLineChars
	phrases := ClichePhrases
	if opts != nil {
		if opts.MaxLineChars > 0 {
			maxChars = opts.MaxLineChars
		}
		if len(opts.ExtraPhrases) > 0 {
			combined := make([]string, 0, len(phrases)+len(opts.ExtraPhrases))
			combined = append(combined, phrases...)
			combined = append(combined, opts.ExtraPhrases...)
			phrases = combined
		}
	}

	var violations []Violation
	violations = append(violations, CheckPhrases(content, phrases)...)
	violations = append(violations, CheckLineLengths(content, maxChars)...)
	return violations
}
