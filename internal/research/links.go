package research

import (
	"net/url"
	"strings"
)

// Category selection order for research pages
var categoryPriority = []string{"careers", "values", "culture", "about", "press"}

var categoryKeywords = map[string][]string{
	"careers": {"careers", "jobs", "join-us", "joinus", "hiring", "positions", "work-with-us"},
	"values":  {"values", "mission", "principles"},
	"culture": {"culture", "life-at", "people", "team"},
	"about":   {"about", "company", "who-we-are", "our-story"},
	"press":   {"press", "news", "blog"},
}

// ClassifyLink returns the research category a URL path suggests, or ""
// when the page looks irrelevant.
func ClassifyLink(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	path := strings.ToLower(parsed.Path)
	for _, category := range categoryPriority {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(path, keyword) {
				return category
			}
		}
	}
	return ""
}

// SelectResearchPages picks up to max links worth crawling: one per
// category in priority order first, then remaining slots filled in the
// same order.
func SelectResearchPages(links []string, max int) []string {
	if max <= 0 {
		return nil
	}

	grouped := make(map[string][]string)
	for _, link := range links {
		if category := ClassifyLink(link); category != "" {
			grouped[category] = append(grouped[category], link)
		}
	}

	var selected []string
	seen := make(map[string]bool)

	for _, category := range categoryPriority {
		if len(selected) >= max {
			break
		}
		for _, link := range grouped[category] {
			if !seen[link] {
				selected = append(selected, link)
				seen[link] = true
				break
			}
		}
	}

	for _, category := range categoryPriority {
		for _, link := range grouped[category] {
			if len(selected) >= max {
				return selected
			}
			if !seen[link] {
				selected = append(selected, link)
				seen[link] = true
			}
		}
	}
	return selected
}
