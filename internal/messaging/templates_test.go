package messaging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/types"
)

const sampleTemplateFile = `Notes about how I like to write outreach.

## Template: Recruiter ping

Hi [name], saw the [role] opening at [company].

## Template: Warm intro

Hi [name], [mutual] suggested I reach out.
`

func TestParseTemplates(t *testing.T) {
	templates := ParseTemplates(sampleTemplateFile)

	require.Len(t, templates, 2)
	assert.Equal(t, "Hi [name], saw the [role] opening at [company].", templates["Recruiter ping"])
	assert.Equal(t, "Hi [name], [mutual] suggested I reach out.", templates["Warm intro"])
}

func TestParseTemplates_NoHeadings(t *testing.T) {
	templates := ParseTemplates("just some prose without any template headings")
	assert.Empty(t, templates)
}

func TestLoadTemplates_MissingFileUsesDefaults(t *testing.T) {
	templates, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.md"))

	require.NoError(t, err)
	assert.Equal(t, DefaultTemplates(), templates)
}

func TestLoadTemplates_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleTemplateFile), 0o644))

	templates, err := LoadTemplates(path)

	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Contains(t, templates, "Recruiter ping")
}

func TestLoadTemplates_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.md")
	require.NoError(t, os.WriteFile(path, []byte("no headings here"), 0o644))

	templates, err := LoadTemplates(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultTemplates(), templates)
}

func TestSelectTemplate(t *testing.T) {
	templates := Templates{
		"Recruiter ping":      "recruiter body",
		"Hiring manager note": "manager body",
		"Alumni catch-up":     "alumni body",
	}

	tests := []struct {
		connectionType string
		wantName       string
	}{
		{types.ConnectionRecruiter, "Recruiter ping"},
		{types.ConnectionHiringManager, "Hiring manager note"},
		{types.ConnectionAlumni, "Alumni catch-up"},
	}
	for _, tt := range tests {
		t.Run(tt.connectionType, func(t *testing.T) {
			name, body := SelectTemplate(templates, tt.connectionType)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, templates[tt.wantName], body)
		})
	}
}

func TestSelectTemplate_NoMatchIsDeterministic(t *testing.T) {
	templates := Templates{
		"Zebra opener": "z body",
		"Basic opener": "b body",
	}

	// No name matches the employee keywords, so the first name in sorted
	// order wins every time.
	for i := 0; i < 5; i++ {
		name, body := SelectTemplate(templates, types.ConnectionEmployee)
		assert.Equal(t, "Basic opener", name)
		assert.Equal(t, "b body", body)
	}
}

func TestSelectTemplate_Empty(t *testing.T) {
	name, body := SelectTemplate(nil, types.ConnectionRecruiter)
	assert.Empty(t, name)
	assert.Empty(t, body)
}

func TestDefaultTemplates_CoverAllConnectionTypes(t *testing.T) {
	templates := DefaultTemplates()

	for _, connectionType := range []string{
		types.ConnectionRecruiter,
		types.ConnectionHiringManager,
		types.ConnectionEmployee,
		types.ConnectionAlumni,
	} {
		name, body := SelectTemplate(templates, connectionType)
		assert.NotEmpty(t, name, "no template for %s", connectionType)
		assert.NotEmpty(t, body)
	}
}
