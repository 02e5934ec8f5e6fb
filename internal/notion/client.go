// Package notion mirrors tracked applications into a Notion database so
// the pipeline can be viewed and annotated outside the terminal.
package notion

import (
	"context"
	"fmt"
	"strings"

	gnt "github.com/dstotijn/go-notion"
)

// SyncError describes a Notion sync failure.
type SyncError struct {
	Message string
	Cause   error
}

func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("notion sync error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("notion sync error: %s", e.Message)
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Client wraps the Notion API for one tracker database. The database is
// expected to carry Position (title), Company, Status, Priority, Location,
// URL and Applied properties.
type Client struct {
	api        *gnt.Client
	databaseID string
}

// NewClient creates a client for the given integration token and database.
func NewClient(token, databaseID string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("notion token is required")
	}
	if strings.TrimSpace(databaseID) == "" {
		return nil, fmt.Errorf("notion database ID is required")
	}
	return &Client{api: gnt.NewClient(token), databaseID: databaseID}, nil
}

// Ping issues a minimal query to verify the token can reach the database.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{PageSize: 1})
	if err != nil {
		return &SyncError{Message: "failed to reach notion database", Cause: err}
	}
	return nil
}
