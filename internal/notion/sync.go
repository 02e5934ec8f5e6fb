package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"github.com/jordan/job-search-agent/internal/db"
)

// SyncResult reports the outcome of a sync run. Errors holds one entry per
// application that could not be synced; the rest of the run continues.
type SyncResult struct {
	Created int     `json:"created"`
	Updated int     `json:"updated"`
	Errors  []error `json:"-"`
}

// Synced returns the number of applications that made it into Notion.
func (r *SyncResult) Synced() int {
	return r.Created + r.Updated
}

// SyncApplications upserts one database page per application. Pages are
// matched on Position and Company, so a rerun updates existing rows
// instead of duplicating them. Requests run sequentially to stay inside
// the Notion API rate limit.
func (c *Client) SyncApplications(ctx context.Context, apps []db.Application) (*SyncResult, error) {
	result := &SyncResult{}
	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		created, err := c.syncOne(ctx, app)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s at %s: %w", app.Position, app.Company, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (c *Client) syncOne(ctx context.Context, app db.Application) (bool, error) {
	pageID, err := c.findPage(ctx, app.Company, app.Position)
	if err != nil {
		return false, err
	}

	props := buildPageProperties(app)
	if pageID != "" {
		_, err := c.api.UpdatePage(ctx, pageID, gnt.UpdatePageParams{
			DatabasePageProperties: props,
		})
		if err != nil {
			return false, fmt.Errorf("failed to update page: %w", err)
		}
		return false, nil
	}

	_, err = c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create page: %w", err)
	}
	return true, nil
}

// findPage returns the ID of the page tracking company+position, or ""
// when no page exists yet.
func (c *Client) findPage(ctx context.Context, company, position string) (string, error) {
	resp, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		Filter: &gnt.DatabaseQueryFilter{
			And: []gnt.DatabaseQueryFilter{
				{
					Property: "Position",
					DatabaseQueryPropertyFilter: gnt.DatabaseQueryPropertyFilter{
						Title: &gnt.TextPropertyFilter{Equals: position},
					},
				},
				{
					Property: "Company",
					DatabaseQueryPropertyFilter: gnt.DatabaseQueryPropertyFilter{
						RichText: &gnt.TextPropertyFilter{Equals: company},
					},
				},
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to query database: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return resp.Results[0].ID, nil
}

func buildPageProperties(app db.Application) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{
		"Position": gnt.DatabasePageProperty{Title: richText(app.Position)},
		"Company":  gnt.DatabasePageProperty{RichText: richText(app.Company)},
	}

	if app.Status != "" {
		props["Status"] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{Name: selectLabel(app.Status)},
		}
	}
	if app.Priority != "" {
		props["Priority"] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{Name: selectLabel(app.Priority)},
		}
	}
	if app.Location != "" {
		props["Location"] = gnt.DatabasePageProperty{RichText: richText(app.Location)}
	}
	if app.JobURL != "" {
		props["URL"] = gnt.DatabasePageProperty{URL: &app.JobURL}
	}
	if d := appliedDate(app.ApplicationDate); d != nil {
		props["Applied"] = gnt.DatabasePageProperty{Date: d}
	}
	return props
}

// richText builds a rich_text value from a plain string.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{{Text: &gnt.Text{Content: s}}}
}

// selectLabel converts a stored value like "under_review" into the select
// option label shown in Notion ("Under Review").
func selectLabel(value string) string {
	words := strings.Split(value, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// appliedDate parses a stored YYYY-MM-DD application date. Unparseable
// dates drop the property rather than failing the sync.
func appliedDate(value string) *gnt.Date {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &gnt.Date{Start: gnt.NewDateTime(t, false)}
}
