// Package ingestion turns fetched HTML and local files into cleaned text
// ready for parsing, plus metadata about where the text came from.
package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jordan/job-search-agent/internal/fetch"
)

// globalNoiseSelector removes elements that never carry posting content.
const globalNoiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// Extract parses HTML and returns the main body text.
// Noise elements are removed first, then the first matching content selector
// wins. If no content selector matches, the whole body is used.
func Extract(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(globalNoiseSelector).Remove()

	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return collapseWhitespace(mainContent.Text()), nil
}

// ExtractPosting extracts job posting text using the platform's selectors.
func ExtractPosting(html string, platform fetch.Platform) (string, error) {
	return Extract(html, fetch.ContentSelectors(platform), fetch.NoiseSelectors(platform)...)
}

// ExtractCompanyPage extracts about/values/culture text from a company page.
func ExtractCompanyPage(html string) (string, error) {
	return Extract(html, fetch.CompanyPageSelectors(), fetch.NoiseSelectors(fetch.PlatformGeneric)...)
}

// ExtractLinks returns absolute same-host links found in the HTML.
// Relative links are resolved against baseURL. Duplicates, fragments and
// non-HTTP schemes are dropped. Used to seed the company research crawler.
func ExtractLinks(html string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host != base.Host {
			return
		}
		resolved.Fragment = ""

		link := resolved.String()
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})

	return links
}

// collapseWhitespace trims each line and drops empty ones.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
