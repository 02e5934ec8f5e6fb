package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/types"
)

// searchConcurrency bounds parallel SerpAPI calls
const searchConcurrency = 4

// SearchTargetRoles runs one search per role in parallel and merges the
// results, dropping duplicate listings.
func (c *Client) SearchTargetRoles(ctx context.Context, roles []string, location string, perRole int) ([]types.JobResult, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	perRoleResults := make([][]types.JobResult, len(roles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, role := range roles {
		g.Go(func() error {
			found, err := c.SearchJobs(gctx, Params{Query: role, Location: location, Limit: perRole})
			if err != nil {
				return fmt.Errorf("failed to search %q: %w", role, err)
			}
			perRoleResults[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []types.JobResult
	for _, results := range perRoleResults {
		combined = append(combined, results...)
	}
	return Dedupe(combined), nil
}

// Dedupe drops listings sharing a title and company, keeping the first.
func Dedupe(results []types.JobResult) []types.JobResult {
	seen := make(map[string]bool, len(results))
	var unique []types.JobResult
	for _, result := range results {
		key := result.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, result)
	}
	return unique
}

// ToApplicationInput converts a listing into tracker input with status
// "new" so found jobs queue up for review.
func ToApplicationInput(result *types.JobResult) *db.ApplicationCreateInput {
	notes := "Found via job search"
	if result.Via != "" {
		notes = "Found via " + result.Via
	}
	if result.PostedAt != "" {
		notes += ", posted " + result.PostedAt
	}

	return &db.ApplicationCreateInput{
		Company:        result.Company,
		Position:       result.Title,
		Location:       result.Location,
		JobURL:         result.ApplyLink,
		JobDescription: result.Description,
		Status:         types.StatusNew,
		Priority:       types.PriorityMedium,
		SalaryRange:    result.Salary,
		Notes:          notes,
		Source:         types.SourceJobSearch,
	}
}
