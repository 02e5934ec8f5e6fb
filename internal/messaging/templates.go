// Package messaging generates personalized recruiter and networking
// outreach: LinkedIn connection requests, recruiter emails, follow-ups.
// Style templates guide the model's tone; generation always degrades to a
// static message rather than failing.
package messaging

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jordan/job-search-agent/internal/types"
)

// Templates maps template names to body text.
type Templates map[string]string

// templateHeading marks the start of a named template in a template file.
const templateHeading = "## Template:"

// LoadTemplates reads a markdown template file split on `## Template: <name>`
// headings. A missing file is not an error; the built-in defaults are
// returned so outreach still works on a fresh install.
func LoadTemplates(path string) (Templates, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTemplates(), nil
		}
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	templates := ParseTemplates(string(content))
	if len(templates) == 0 {
		return DefaultTemplates(), nil
	}
	return templates, nil
}

// ParseTemplates splits markdown content into named templates. Content
// before the first heading is ignored.
func ParseTemplates(content string) Templates {
	templates := make(Templates)

	var name string
	var body []string

	flush := func() {
		if name == "" {
			return
		}
		templates[name] = strings.TrimSpace(strings.Join(body, "\n"))
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, templateHeading) {
			flush()
			name = strings.TrimSpace(strings.TrimPrefix(line, templateHeading))
			body = nil
			continue
		}
		if name != "" {
			body = append(body, line)
		}
	}
	flush()

	return templates
}

// SelectTemplate picks the template whose name matches the contact's
// connection type, preferring keyword matches on the template name. Ties
// and misses resolve by sorted name order so selection is deterministic.
func SelectTemplate(templates Templates, connectionType string) (string, string) {
	if len(templates) == 0 {
		return "", ""
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lower := strings.ToLower(name)
		for _, keyword := range connectionKeywords(connectionType) {
			if strings.Contains(lower, keyword) {
				return name, templates[name]
			}
		}
	}

	return names[0], templates[names[0]]
}

func connectionKeywords(connectionType string) []string {
	switch connectionType {
	case types.ConnectionRecruiter:
		return []string{"recruiter"}
	case types.ConnectionHiringManager:
		return []string{"hiring", "manager"}
	case types.ConnectionEmployee:
		return []string{"employee", "referral"}
	case types.ConnectionAlumni:
		return []string{"alumni", "alum"}
	default:
		return nil
	}
}

// DefaultTemplates returns the built-in outreach style templates, one per
// connection type.
func DefaultTemplates() Templates {
	return Templates{
		"Recruiter connection": "Hi [name], I saw you recruit for [team] roles at [company]. " +
			"I'm a [discipline] engineer with experience in [strength] and I'd love to be on your radar " +
			"for relevant openings.",
		"Hiring manager introduction": "Hi [name], your team's work on [project] caught my attention. " +
			"I've solved similar problems at [employer] and would value a short conversation about " +
			"where the team is headed.",
		"Employee referral chat": "Hi [name], I'm exploring roles at [company] and would love to hear " +
			"what the day-to-day is like on your team before I apply. Happy to keep it to 15 minutes.",
		"Alumni introduction": "Hi [name], fellow [school] alum here. I've been following your path to " +
			"[company] and would love to swap notes about the work your team does.",
	}
}
