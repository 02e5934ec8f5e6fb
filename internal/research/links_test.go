package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"Careers page", "https://acme.com/careers", "careers"},
		{"Jobs listing", "https://acme.com/jobs/platform-engineer", "careers"},
		{"Join us page", "https://acme.com/join-us", "careers"},
		{"Mission page", "https://acme.com/company/mission", "values"},
		{"Culture page", "https://acme.com/life-at-acme", "culture"},
		{"About page", "https://acme.com/about-us", "about"},
		{"Blog post", "https://acme.com/blog/engineering", "press"},
		{"Press release", "https://acme.com/press/2024", "press"},
		{"Product page", "https://acme.com/products/widget", ""},
		{"Homepage", "https://acme.com/", ""},
		{"Keyword only in query", "https://acme.com/?page=careers", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLink(tt.url))
		})
	}
}

func TestSelectResearchPages(t *testing.T) {
	links := []string{
		"https://acme.com/blog/post-1",
		"https://acme.com/about",
		"https://acme.com/careers",
		"https://acme.com/mission",
		"https://acme.com/products",
	}

	selected := SelectResearchPages(links, 3)

	expected := []string{
		"https://acme.com/careers",
		"https://acme.com/mission",
		"https://acme.com/about",
	}
	assert.Equal(t, expected, selected)
}

func TestSelectResearchPages_FillsFromSameCategory(t *testing.T) {
	links := []string{
		"https://acme.com/careers",
		"https://acme.com/careers/engineering",
		"https://acme.com/about",
	}

	selected := SelectResearchPages(links, 3)

	expected := []string{
		"https://acme.com/careers",
		"https://acme.com/about",
		"https://acme.com/careers/engineering",
	}
	assert.Equal(t, expected, selected)
}

func TestSelectResearchPages_CapsAtMax(t *testing.T) {
	links := []string{
		"https://acme.com/careers",
		"https://acme.com/mission",
		"https://acme.com/culture",
		"https://acme.com/about",
	}

	selected := SelectResearchPages(links, 2)

	expected := []string{
		"https://acme.com/careers",
		"https://acme.com/mission",
	}
	assert.Equal(t, expected, selected)
}

func TestSelectResearchPages_ZeroMax(t *testing.T) {
	assert.Nil(t, SelectResearchPages([]string{"https://acme.com/careers"}, 0))
}

func TestSelectResearchPages_IrrelevantOnly(t *testing.T) {
	links := []string{
		"https://acme.com/pricing",
		"https://acme.com/login",
	}
	assert.Empty(t, SelectResearchPages(links, 3))
}
