// Package research builds a structured company profile from the company's
// own public pages. It crawls a handful of relevant pages starting from a
// seed URL, then asks the model to summarize what the company does, how it
// presents its culture, and which values it states. Profiles personalize
// cover letters and recruiter outreach.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jordan/job-search-agent/internal/fetch"
	"github.com/jordan/job-search-agent/internal/ingestion"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/prompts"
	"github.com/jordan/job-search-agent/internal/schemas"
	"github.com/jordan/job-search-agent/internal/types"
)

const (
	// MaxResearchPages caps how many pages are fetched per company,
	// seed page included.
	MaxResearchPages = 5

	// maxCorpusChars bounds the text sent to the model.
	maxCorpusChars = 20000

	pageSeparator    = "\n\n---\n\n"
	maxProfileValues = 6
)

// Error represents a failure while researching a company.
type Error struct {
	Company string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("research error for %s: %s: %v", e.Company, e.Message, e.Cause)
	}
	return fmt.Sprintf("research error for %s: %s", e.Company, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the research crawl.
type Options struct {
	// MaxPages is the total page budget including the seed.
	// Zero means MaxResearchPages.
	MaxPages int
	Fetch    *fetch.Options
	// Delay is the pause between page fetches.
	Delay   time.Duration
	Verbose bool
}

// Research fetches the seed page, follows the most relevant same-host
// links (careers, values, culture, about, press), and summarizes the
// collected text into a CompanyProfile. Pages that fail to fetch are
// skipped; the crawl only fails when nothing usable was collected.
func Research(ctx context.Context, client llm.Client, company, seedURL string, opts *Options) (*types.CompanyProfile, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, &Error{Message: "company name is required"}
	}
	seedURL = strings.TrimSpace(seedURL)
	if seedURL == "" {
		return nil, &Error{Company: company, Message: "seed URL is required"}
	}

	if opts == nil {
		opts = &Options{}
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = MaxResearchPages
	}

	seed, err := fetch.URL(ctx, seedURL, opts.Fetch)
	if err != nil {
		return nil, &Error{Company: company, Message: "failed to fetch seed page", Cause: err}
	}

	var parts []string
	var sources []string

	if text, err := ingestion.ExtractCompanyPage(seed.HTML); err == nil && text != "" {
		parts = append(parts, text)
		sources = append(sources, seedURL)
	}

	links := ingestion.ExtractLinks(seed.HTML, seedURL)
	pages := SelectResearchPages(withoutSeed(links, seedURL), maxPages-1)

	for i, page := range pages {
		if i > 0 && opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}

		result, err := fetch.URL(ctx, page, opts.Fetch)
		if err != nil {
			if opts.Verbose {
				log.Printf("[RESEARCH] skipping %s: %v", page, err)
			}
			continue
		}

		text, err := ingestion.ExtractCompanyPage(result.HTML)
		if err != nil || text == "" {
			continue
		}
		parts = append(parts, text)
		sources = append(sources, page)

		if opts.Verbose {
			log.Printf("[RESEARCH] collected %s (%d chars)", page, utf8.RuneCountInString(text))
		}
	}

	corpus := truncateRunes(strings.Join(parts, pageSeparator), maxCorpusChars)
	if corpus == "" {
		return nil, &Error{Company: company, Message: "no usable content found on company pages"}
	}

	return SummarizeCompany(ctx, client, company, corpus, sources)
}

// SummarizeCompany turns collected page text into a validated profile.
func SummarizeCompany(ctx context.Context, client llm.Client, company, corpus string, sourceURLs []string) (*types.CompanyProfile, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, &Error{Message: "company name is required"}
	}
	corpus = strings.TrimSpace(corpus)
	if corpus == "" {
		return nil, &Error{Company: company, Message: "corpus is empty"}
	}

	prompt := prompts.Format(prompts.MustGet("research.json", "summarize-company"), map[string]string{
		"Company": company,
		"Corpus":  corpus,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Company: company, Message: "failed to summarize company pages", Cause: err}
	}

	var profile types.CompanyProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, &Error{Company: company, Message: "failed to parse summary response", Cause: err}
	}

	// The model sometimes restyles the company name. Keep the caller's
	// so stored profiles stay keyed consistently.
	profile.Company = company
	profile.Summary = strings.TrimSpace(profile.Summary)
	profile.Culture = strings.TrimSpace(profile.Culture)
	profile.Tone = strings.TrimSpace(profile.Tone)
	profile.Values = cleanValues(profile.Values)
	profile.SourceURLs = sourceURLs

	encoded, err := json.Marshal(&profile)
	if err != nil {
		return nil, &Error{Company: company, Message: "failed to re-encode profile for validation", Cause: err}
	}
	if err := schemas.ValidateCompanyProfile(string(encoded)); err != nil {
		return nil, &Error{Company: company, Message: "company profile failed schema validation", Cause: err}
	}

	return &profile, nil
}

// cleanValues trims entries, drops empties and case-insensitive
// duplicates, and caps the list at maxProfileValues.
func cleanValues(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
		if len(out) == maxProfileValues {
			break
		}
	}
	return out
}

// withoutSeed drops links that point back at the seed page itself.
func withoutSeed(links []string, seedURL string) []string {
	seed := strings.TrimSuffix(seedURL, "/")
	var out []string
	for _, link := range links {
		if strings.TrimSuffix(link, "/") == seed {
			continue
		}
		out = append(out, link)
	}
	return out
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
