package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names.
var skillNormalizations = map[string]string{
	"go":         "Go",
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"ci/cd":      "CI/CD",
}

// NormalizeSkillName maps a skill name to its canonical form.
func NormalizeSkillName(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}

	// Single all-lowercase words get an initial capital
	if !strings.Contains(normalized, " ") && normalized == strings.ToLower(normalized) {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills canonicalizes skill names and removes duplicates,
// keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool)
	for _, skill := range skills {
		normalized := NormalizeSkillName(skill)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, normalized)
	}
	return out
}

// NormalizeExperienceLevel coerces free-form seniority phrases to the
// profile's level values. Unrecognized phrases map to unstated.
func NormalizeExperienceLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))

	switch {
	case strings.Contains(level, "intern"),
		strings.Contains(level, "entry"),
		strings.Contains(level, "junior"),
		strings.Contains(level, "graduate"):
		return "entry"
	case strings.Contains(level, "staff"),
		strings.Contains(level, "principal"):
		return "staff"
	case strings.Contains(level, "exec"),
		strings.Contains(level, "director"),
		strings.Contains(level, "vp"),
		strings.Contains(level, "head of"):
		return "executive"
	case strings.Contains(level, "senior"):
		return "senior"
	case strings.Contains(level, "mid"):
		return "mid"
	default:
		return ""
	}
}
