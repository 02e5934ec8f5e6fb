package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/customsearch/v1"
)

func TestIsThirdPartyHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"LinkedIn", "https://www.linkedin.com/company/acme", true},
		{"Lever subdomain", "https://jobs.lever.co/acme", true},
		{"Greenhouse board", "https://job-boards.greenhouse.io/acme", true},
		{"Glassdoor", "https://www.glassdoor.com/Overview/acme", true},
		{"Wikipedia", "https://en.wikipedia.org/wiki/Acme", true},
		{"Company site", "https://acme.com/about", false},
		{"Careers subdomain", "https://careers.acme.com", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isThirdPartyHost(tt.url))
		})
	}
}

func TestPickWebsite(t *testing.T) {
	items := []*customsearch.Result{
		{Link: "https://www.linkedin.com/company/acme"},
		nil,
		{Link: ""},
		{Link: "https://acme.com"},
		{Link: "https://acme.com/careers"},
	}

	assert.Equal(t, "https://acme.com", pickWebsite(items))
}

func TestPickWebsite_AllThirdParty(t *testing.T) {
	items := []*customsearch.Result{
		{Link: "https://www.glassdoor.com/Overview/acme"},
		{Link: "https://en.wikipedia.org/wiki/Acme"},
	}

	assert.Equal(t, "", pickWebsite(items))
}

func TestNewDiscoverer_RequiresCredentials(t *testing.T) {
	_, err := NewDiscoverer(context.Background(), "", "cx-id")
	require.Error(t, err)

	_, err = NewDiscoverer(context.Background(), "api-key", "")
	require.Error(t, err)
}
