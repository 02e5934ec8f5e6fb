package parsing

import (
	"strings"

	"github.com/jordan/job-search-agent/internal/types"
)

// parseLabelled parses the labelled-line answer format some models fall
// back to when they ignore the JSON instruction:
//
//	TITLE: Senior Engineer
//	COMPANY: Acme
//	LOCATION: Remote
//	REQUIREMENTS:
//	- 5+ years of Go
//	RESPONSIBILITIES:
//	- Own the payments service
//	SKILLS:
//	- Go
//	EXPERIENCE_LEVEL: senior
//
// Lines under a list label accumulate until the next label. Returns false
// when neither TITLE: nor COMPANY: appears anywhere in the text.
func parseLabelled(text string) (*types.JobProfile, bool) {
	profile := &types.JobProfile{}
	found := false

	var currentList *[]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TITLE:"):
			profile.Title = labelValue(line, "TITLE:")
			currentList = nil
			found = true
		case strings.HasPrefix(line, "COMPANY:"):
			profile.Company = labelValue(line, "COMPANY:")
			currentList = nil
			found = true
		case strings.HasPrefix(line, "LOCATION:"):
			profile.Location = labelValue(line, "LOCATION:")
			currentList = nil
		case strings.HasPrefix(line, "EXPERIENCE_LEVEL:"):
			profile.ExperienceLevel = labelValue(line, "EXPERIENCE_LEVEL:")
			currentList = nil
		case strings.HasPrefix(line, "REQUIREMENTS:"):
			currentList = &profile.Requirements
			appendItem(currentList, labelValue(line, "REQUIREMENTS:"))
		case strings.HasPrefix(line, "RESPONSIBILITIES:"):
			currentList = &profile.Responsibilities
			appendItem(currentList, labelValue(line, "RESPONSIBILITIES:"))
		case strings.HasPrefix(line, "SKILLS:"):
			currentList = &profile.Skills
			appendItem(currentList, labelValue(line, "SKILLS:"))
		case strings.HasPrefix(line, "KEYWORDS:"):
			currentList = &profile.Keywords
			appendItem(currentList, labelValue(line, "KEYWORDS:"))
		case currentList != nil:
			appendItem(currentList, line)
		}
	}

	return profile, found
}

func labelValue(line, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, label))
}

// appendItem adds a list entry, dropping bullet markers and the bracketed
// placeholders models sometimes echo from the format description.
func appendItem(list *[]string, item string) {
	item = strings.TrimSpace(item)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(item, marker) {
			item = strings.TrimSpace(strings.TrimPrefix(item, marker))
			break
		}
	}
	if item == "" || (strings.HasPrefix(item, "[") && strings.HasSuffix(item, "]")) {
		return
	}
	*list = append(*list, item)
}
