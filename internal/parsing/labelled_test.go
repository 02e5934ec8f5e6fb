package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabelled_FullFormat(t *testing.T) {
	text := `TITLE: Platform Engineer
COMPANY: Globex
LOCATION: NYC (hybrid)
REQUIREMENTS:
- 4+ years of infrastructure work
* Comfort with incident response
RESPONSIBILITIES:
- Run the build system
SKILLS:
- Terraform
- AWS
EXPERIENCE_LEVEL: senior
KEYWORDS:
platform
infrastructure`

	profile, ok := parseLabelled(text)
	require.True(t, ok)

	assert.Equal(t, "Platform Engineer", profile.Title)
	assert.Equal(t, "Globex", profile.Company)
	assert.Equal(t, "NYC (hybrid)", profile.Location)
	assert.Equal(t, "senior", profile.ExperienceLevel)
	assert.Equal(t, []string{"4+ years of infrastructure work", "Comfort with incident response"}, profile.Requirements)
	assert.Equal(t, []string{"Run the build system"}, profile.Responsibilities)
	assert.Equal(t, []string{"Terraform", "AWS"}, profile.Skills)
	assert.Equal(t, []string{"platform", "infrastructure"}, profile.Keywords)
}

func TestParseLabelled_SkipsPlaceholders(t *testing.T) {
	text := `TITLE: Engineer
COMPANY: Acme
REQUIREMENTS: [list of requirements, one per line]
- Real requirement`

	profile, ok := parseLabelled(text)
	require.True(t, ok)
	assert.Equal(t, []string{"Real requirement"}, profile.Requirements)
}

func TestParseLabelled_InlineListValue(t *testing.T) {
	text := `TITLE: Engineer
COMPANY: Acme
SKILLS: Go`

	profile, ok := parseLabelled(text)
	require.True(t, ok)
	assert.Equal(t, []string{"Go"}, profile.Skills)
}

func TestParseLabelled_NotLabelled(t *testing.T) {
	_, ok := parseLabelled("Sorry, I cannot parse this job description.")
	assert.False(t, ok)

	_, ok = parseLabelled(`{"title": "Engineer"}`)
	assert.False(t, ok)
}
