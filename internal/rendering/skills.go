package rendering

import "strings"

// Skill category names in display order.
const (
	CategoryLanguages  = "Programming Languages"
	CategoryFrameworks = "Frameworks & Libraries"
	CategoryTools      = "Tools & Platforms"
	CategoryCloud      = "Cloud & Infrastructure"
	CategoryDatabases  = "Databases"
	CategoryOther      = "Other"
)

// SkillCategory groups skills under one display heading.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

var displayOrder = []string{
	CategoryLanguages,
	CategoryFrameworks,
	CategoryTools,
	CategoryCloud,
	CategoryDatabases,
	CategoryOther,
}

// matchOrder puts the most specific buckets first so "PostgreSQL" lands
// in Databases before the "sql" language keyword can claim it.
var matchOrder = []string{
	CategoryDatabases,
	CategoryCloud,
	CategoryFrameworks,
	CategoryTools,
	CategoryLanguages,
}

var skillKeywords = map[string][]string{
	CategoryLanguages: {
		"go", "golang", "python", "java", "typescript", "javascript",
		"rust", "c", "c++", "c#", "sql", "bash", "shell", "ruby",
		"kotlin", "scala", "php", "r",
	},
	CategoryFrameworks: {
		"react", "vue", "angular", "django", "flask", "fastapi", "rails",
		"spring", "gin", "grpc", "node.js", "nodejs", "next.js", "pandas",
		"numpy", "pytorch", "tensorflow", "scikit-learn", "spark",
	},
	CategoryTools: {
		"git", "docker", "kubernetes", "k8s", "terraform", "ansible",
		"jenkins", "airflow", "kafka", "rabbitmq", "nginx", "linux",
		"grafana", "prometheus", "ci/cd", "github actions",
	},
	CategoryCloud: {
		"aws", "gcp", "azure", "lambda", "ec2", "s3", "cloudformation",
		"bigquery", "cloudflare", "heroku", "vercel", "google cloud",
	},
	CategoryDatabases: {
		"postgres", "postgresql", "mysql", "sqlite", "mongodb", "redis",
		"dynamodb", "cassandra", "elasticsearch", "redshift", "snowflake",
	},
}

// CategorizeSkills buckets skills by keyword into display categories.
// Unmatched skills land in Other. Empty categories are dropped and the
// result order is stable.
func CategorizeSkills(skills []string) []SkillCategory {
	buckets := make(map[string][]string)

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		category := classifySkill(skill)
		buckets[category] = append(buckets[category], skill)
	}

	var out []SkillCategory
	for _, name := range displayOrder {
		if len(buckets[name]) > 0 {
			out = append(out, SkillCategory{Name: name, Skills: buckets[name]})
		}
	}
	return out
}

func classifySkill(skill string) string {
	lower := strings.ToLower(skill)
	tokens := skillTokens(lower)

	for _, category := range matchOrder {
		for _, keyword := range skillKeywords[category] {
			if matchesKeyword(lower, tokens, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}

// matchesKeyword uses substring matching for multi-word keywords and
// whole-token matching otherwise, so "Django" never matches "go".
func matchesKeyword(lower string, tokens []string, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(lower, keyword)
	}
	for _, token := range tokens {
		if token == keyword {
			return true
		}
	}
	return false
}

func skillTokens(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')'
	})
}

// SkillsSection renders categorized skills as a resume section, one
// bullet per category.
func SkillsSection(skills []string) Section {
	section := Section{Title: "Technical Skills"}
	for _, category := range CategorizeSkills(skills) {
		section.Blocks = append(section.Blocks, Block{
			Kind: BlockBullet,
			Text: category.Name + ": " + strings.Join(category.Skills, ", "),
		})
	}
	return section
}
