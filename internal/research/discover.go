package research

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Discoverer finds a company's website through Google Custom Search when
// no URL is on file for it.
type Discoverer struct {
	svc *customsearch.Service
	cx  string
}

// NewDiscoverer creates a Discoverer backed by a programmable search
// engine. cx is the search engine ID.
func NewDiscoverer(ctx context.Context, apiKey, cx string) (*Discoverer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if cx == "" {
		return nil, fmt.Errorf("search engine ID is required")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Discoverer{svc: svc, cx: cx}, nil
}

// CompanyWebsite returns the most likely official website for a company.
// Job boards, social networks and directories are skipped so the crawl
// starts on the company's own pages.
func (d *Discoverer) CompanyWebsite(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", &Error{Message: "company name is required"}
	}

	query := fmt.Sprintf("%s official website", company)
	resp, err := d.svc.Cse.List().Context(ctx).Cx(d.cx).Q(query).Num(5).Do()
	if err != nil {
		return "", &Error{Company: company, Message: "website search failed", Cause: err}
	}

	link := pickWebsite(resp.Items)
	if link == "" {
		return "", &Error{Company: company, Message: "no usable website in search results"}
	}
	return link, nil
}

// pickWebsite returns the first search result hosted on the company's
// own domain rather than a third-party platform.
func pickWebsite(items []*customsearch.Result) string {
	for _, item := range items {
		if item == nil || item.Link == "" {
			continue
		}
		if isThirdPartyHost(item.Link) {
			continue
		}
		return item.Link
	}
	return ""
}

var thirdPartyHosts = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"greenhouse.io",
	"lever.co",
	"workday.com",
	"myworkdayjobs.com",
	"wikipedia.org",
	"crunchbase.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"medium.com",
}

// isThirdPartyHost reports whether a URL lives on a job board, social
// network or directory instead of a company site.
func isThirdPartyHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := strings.ToLower(strings.TrimPrefix(parsed.Host, "www."))
	for _, third := range thirdPartyHosts {
		if host == third || strings.HasSuffix(host, "."+third) {
			return true
		}
	}
	return false
}
