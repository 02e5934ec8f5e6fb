package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Platform
	}{
		{"greenhouse board", "https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"greenhouse embed", "https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"lever", "https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"linkedin", "https://www.linkedin.com/jobs/view/3999999999", PlatformLinkedIn},
		{"workday subdomain", "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"workday direct", "https://careers.workday.com/jobs/123", PlatformWorkday},
		{"indeed", "https://www.indeed.com/viewjob?jk=abc123", PlatformIndeed},
		{"indeed regional", "https://uk.indeed.com/viewjob?jk=abc123", PlatformIndeed},
		{"company site", "https://acme.com/careers/senior-engineer", PlatformGeneric},
		{"unparseable", "://nope", PlatformGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors_KnownPlatforms(t *testing.T) {
	for _, platform := range []Platform{
		PlatformGreenhouse,
		PlatformLever,
		PlatformLinkedIn,
		PlatformWorkday,
		PlatformIndeed,
		PlatformGeneric,
	} {
		selectors := ContentSelectors(platform)
		assert.NotEmpty(t, selectors, "platform %s should have selectors", platform)
	}

	assert.Contains(t, ContentSelectors(PlatformIndeed), "#jobDescriptionText")
	assert.Contains(t, ContentSelectors(PlatformLinkedIn), ".description__text")
	assert.Equal(t, GenericPostingSelectors(), ContentSelectors(PlatformGeneric))
}

func TestNoiseSelectors_IncludeCommon(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLinkedIn, PlatformGeneric} {
		selectors := NoiseSelectors(platform)
		assert.Contains(t, selectors, "form", "platform %s should exclude application forms", platform)
		assert.Contains(t, selectors, ".cookie-banner")
	}

	assert.Contains(t, NoiseSelectors(PlatformGreenhouse), ".post-apply")
	assert.Contains(t, NoiseSelectors(PlatformIndeed), "#applyButtonLinkContainer")
}
