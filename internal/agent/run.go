package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/messaging"
	"github.com/jordan/job-search-agent/internal/notion"
	"github.com/jordan/job-search-agent/internal/search"
	"github.com/jordan/job-search-agent/internal/types"
)

// Defaults applied when RunOptions leaves them unset.
const (
	DefaultDailyLimit   = 5
	DefaultFollowUpDays = 7
	defaultPerRole      = 10
)

// reviewAfterDays is how long an application sits in "applied" before the
// agent assumes the employer is reviewing it.
const reviewAfterDays = 7

const (
	totalSteps = 5
	dateLayout = "2006-01-02"
)

// ProgressEvent reports one workflow step to the caller.
type ProgressEvent struct {
	Step   int    `json:"step"`
	Total  int    `json:"total"`
	Name   string `json:"name"`
	Status string `json:"status"` // started, completed, failed
	Detail string `json:"detail,omitempty"`
}

// ProgressCallback is called as workflow steps start and finish.
type ProgressCallback func(event ProgressEvent)

// Searcher finds job listings for the configured roles.
type Searcher interface {
	SearchTargetRoles(ctx context.Context, roles []string, location string, perRole int) ([]types.JobResult, error)
}

// Syncer mirrors tracked applications into an external tracker.
type Syncer interface {
	SyncApplications(ctx context.Context, apps []db.Application) (*notion.SyncResult, error)
}

// RunOptions holds configuration for one daily run.
type RunOptions struct {
	Store        *db.Store
	Client       llm.Client // optional; skips follow-up drafting when nil
	Searcher     Searcher   // optional; skips the search step when nil
	Notion       Syncer     // optional; skips the sync step when nil
	TargetRoles  []string
	Location     string
	TopCompanies []string
	DailyLimit   int
	FollowUpDays int
	PerRole      int
	Verbose      bool
	OnProgress   ProgressCallback
}

// Summary totals what one daily run did. Soft failures are collected in
// Errors; they do not abort the run.
type Summary struct {
	FollowUpsProcessed  int      `json:"follow_ups_processed"`
	JobsFound           int      `json:"jobs_found"`
	ApplicationsCreated int      `json:"applications_created"`
	StatusesAdvanced    int      `json:"statuses_advanced"`
	Synced              int      `json:"synced"`
	Errors              []string `json:"errors,omitempty"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step int, name, status, detail string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:   step,
			Total:  totalSteps,
			Name:   name,
			Status: status,
			Detail: detail,
		})
	}
}

// RunDaily executes the daily workflow:
//  1. Process follow-ups that are due and schedule the next ones.
//  2. Search listings for the configured target roles.
//  3. Create applications for new listings within the daily limit.
//  4. Advance stale "applied" applications to "under_review".
//  5. Sync the tracker to Notion.
//
// Step failures are recorded in the summary and the run continues; only
// context cancellation stops it between steps.
func (a *Agent) RunDaily(ctx context.Context, opts RunOptions) (*Summary, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.DailyLimit <= 0 {
		opts.DailyLimit = DefaultDailyLimit
	}
	if opts.FollowUpDays <= 0 {
		opts.FollowUpDays = DefaultFollowUpDays
	}
	if opts.PerRole <= 0 {
		opts.PerRole = defaultPerRole
	}

	if err := a.begin(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	var found []types.JobResult

	fmt.Printf("🚀 Starting daily job-search workflow...\n")

	ok := a.runStep(ctx, &opts, summary, 1, "follow-ups", StateFollowingUp, "Processing due follow-ups", func() (string, error) {
		return processFollowUps(ctx, &opts, summary)
	})
	if ok {
		ok = a.runStep(ctx, &opts, summary, 2, "search", StateSearching, "Searching job listings", func() (string, error) {
			var detail string
			var err error
			found, detail, err = searchJobs(ctx, &opts, summary)
			return detail, err
		})
	}
	if ok {
		ok = a.runStep(ctx, &opts, summary, 3, "applications", StateApplying, "Creating applications", func() (string, error) {
			return createApplications(ctx, &opts, summary, found)
		})
	}
	if ok {
		ok = a.runStep(ctx, &opts, summary, 4, "statuses", StateApplying, "Advancing application statuses", func() (string, error) {
			return advanceStatuses(ctx, &opts, summary)
		})
	}
	if ok {
		ok = a.runStep(ctx, &opts, summary, 5, "sync", StateApplying, "Syncing tracker", func() (string, error) {
			return syncTracker(ctx, &opts, summary)
		})
	}
	if !ok {
		fmt.Printf("⚠️ Daily workflow stopped: %v\n", ctx.Err())
		return a.finish(summary, ctx.Err())
	}

	fmt.Printf("✅ Daily workflow complete: %d follow-ups, %d jobs found, %d applications created, %d advanced, %d synced.\n",
		summary.FollowUpsProcessed, summary.JobsFound, summary.ApplicationsCreated,
		summary.StatusesAdvanced, summary.Synced)
	return a.finish(summary, nil)
}

// runStep executes one workflow step, downgrading its failure to a
// summary error. It reports false when the run was cancelled.
func (a *Agent) runStep(ctx context.Context, opts *RunOptions, summary *Summary, num int, name, state, title string, fn func() (string, error)) bool {
	if ctx.Err() != nil {
		return false
	}

	a.setState(state, name)
	fmt.Printf("Step %d/%d: %s...\n", num, totalSteps, title)
	emitProgress(opts, num, name, "started", "")

	detail, err := fn()
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		fmt.Printf("⚠️ Warning: %s step failed: %v\n", name, err)
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
		emitProgress(opts, num, name, "failed", err.Error())
		return true
	}

	emitProgress(opts, num, name, "completed", detail)
	return true
}

// processFollowUps drafts a follow-up message for each application whose
// follow-up date has arrived and schedules the next one.
func processFollowUps(ctx context.Context, opts *RunOptions, summary *Summary) (string, error) {
	due, err := opts.Store.FollowUpsDue(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("failed to list due follow-ups: %w", err)
	}
	if len(due) == 0 {
		fmt.Printf("  No follow-ups due.\n")
		return "no follow-ups due", nil
	}

	next := time.Now().AddDate(0, 0, opts.FollowUpDays).Format(dateLayout)
	for i := range due {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		app := &due[i]
		fmt.Printf("  Follow-up due: %s at %s (scheduled %s)\n", app.Position, app.Company, app.FollowUpDate)

		if opts.Client != nil {
			if err := draftFollowUp(ctx, opts, app); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("follow-up draft for %s: %v", app.Company, err))
			}
		}

		if _, err := opts.Store.SetFollowUpDate(ctx, app.ID, next); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("follow-up date for %s: %v", app.Company, err))
			continue
		}
		summary.FollowUpsProcessed++
	}
	return fmt.Sprintf("processed %d follow-ups", summary.FollowUpsProcessed), nil
}

// draftFollowUp generates a follow-up message for the application's
// recruiter and saves it for review.
func draftFollowUp(ctx context.Context, opts *RunOptions, app *db.Application) error {
	name := app.RecruiterName
	if name == "" {
		name = "Hiring Manager"
	}
	contact := &types.Contact{
		Name:           name,
		Company:        app.Company,
		ConnectionType: types.ConnectionRecruiter,
	}

	message, err := messaging.FollowUpMessage(ctx, opts.Client, contact, app.Position, opts.FollowUpDays)
	if err != nil {
		return err
	}

	_, err = opts.Store.SaveMessage(ctx, &db.MessageCreateInput{
		ContactName: contact.Name,
		Company:     app.Company,
		Kind:        types.MessageFollowUp,
		Body:        message.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to save follow-up draft: %w", err)
	}
	return nil
}

// searchJobs searches listings for every target role in parallel and
// returns the deduplicated results.
func searchJobs(ctx context.Context, opts *RunOptions, summary *Summary) ([]types.JobResult, string, error) {
	if opts.Searcher == nil || len(opts.TargetRoles) == 0 {
		fmt.Printf("  No search configured, skipping.\n")
		return nil, "search not configured", nil
	}

	found, err := opts.Searcher.SearchTargetRoles(ctx, opts.TargetRoles, opts.Location, opts.PerRole)
	if err != nil {
		return nil, "", fmt.Errorf("failed to search target roles: %w", err)
	}

	summary.JobsFound = len(found)
	fmt.Printf("  Found %d unique listings across %d roles.\n", len(found), len(opts.TargetRoles))
	return found, fmt.Sprintf("found %d listings", len(found)), nil
}

// createApplications records found listings as applied, skipping those
// already tracked and stopping at the daily limit.
func createApplications(ctx context.Context, opts *RunOptions, summary *Summary, found []types.JobResult) (string, error) {
	if len(found) == 0 {
		return "no new listings", nil
	}

	today := time.Now().Format(dateLayout)
	createdToday, err := opts.Store.CountApplicationsOn(ctx, today)
	if err != nil {
		return "", fmt.Errorf("failed to count today's applications: %w", err)
	}
	remaining := opts.DailyLimit - createdToday
	if remaining <= 0 {
		fmt.Printf("  Daily application limit reached (%d), skipping new applications.\n", opts.DailyLimit)
		return "daily limit reached", nil
	}

	followUp := time.Now().AddDate(0, 0, opts.FollowUpDays).Format(dateLayout)
	for i := range found {
		if remaining <= 0 {
			fmt.Printf("  Daily application limit reached (%d).\n", opts.DailyLimit)
			break
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		job := &found[i]

		existing, err := opts.Store.FindByCompanyPosition(ctx, job.Company, job.Title)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("dedupe %s at %s: %v", job.Title, job.Company, err))
			continue
		}
		if existing != nil {
			if opts.Verbose {
				fmt.Printf("  Skipping %s at %s: already tracked\n", job.Title, job.Company)
			}
			continue
		}

		input := search.ToApplicationInput(job)
		input.Status = types.StatusApplied
		input.ApplicationDate = today
		input.FollowUpDate = followUp
		input.Priority = jobPriority(job, opts.TopCompanies)
		input.Source = types.SourceAgent

		if _, err := opts.Store.CreateApplication(ctx, input); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("create %s at %s: %v", job.Title, job.Company, err))
			continue
		}
		summary.ApplicationsCreated++
		remaining--
		fmt.Printf("  Applied: %s at %s (%s priority)\n", job.Title, job.Company, input.Priority)
	}
	return fmt.Sprintf("created %d applications", summary.ApplicationsCreated), nil
}

// jobPriority mirrors how listings are triaged: target companies and
// senior roles first.
func jobPriority(job *types.JobResult, topCompanies []string) string {
	company := strings.ToLower(job.Company)
	for _, top := range topCompanies {
		if company == strings.ToLower(top) {
			return types.PriorityHigh
		}
	}

	title := strings.ToLower(job.Title)
	for _, level := range []string{"senior", "staff", "principal"} {
		if strings.Contains(title, level) {
			return types.PriorityHigh
		}
	}
	return types.PriorityMedium
}

// advanceStatuses moves applications that have sat in "applied" long
// enough into "under_review" and schedules a follow-up.
func advanceStatuses(ctx context.Context, opts *RunOptions, summary *Summary) (string, error) {
	apps, err := opts.Store.ListApplications(ctx, &db.ApplicationFilters{
		Status: types.StatusApplied,
		Limit:  db.MaxListLimit,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list applied applications: %w", err)
	}

	for i := range apps {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		app := &apps[i]

		applied, err := time.Parse(dateLayout, app.ApplicationDate)
		if err != nil {
			continue
		}
		if time.Since(applied) < reviewAfterDays*24*time.Hour {
			continue
		}

		status := types.StatusUnderReview
		followUp := time.Now().AddDate(0, 0, opts.FollowUpDays).Format(dateLayout)
		if _, err := opts.Store.UpdateApplication(ctx, app.ID, &db.ApplicationUpdateInput{
			Status:       &status,
			FollowUpDate: &followUp,
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("advance %s at %s: %v", app.Position, app.Company, err))
			continue
		}
		summary.StatusesAdvanced++
		if opts.Verbose {
			fmt.Printf("  Moved %s at %s to under review\n", app.Position, app.Company)
		}
	}
	return fmt.Sprintf("advanced %d applications", summary.StatusesAdvanced), nil
}

// syncTracker mirrors the most recent applications into Notion.
func syncTracker(ctx context.Context, opts *RunOptions, summary *Summary) (string, error) {
	if opts.Notion == nil {
		fmt.Printf("  No tracker sync configured, skipping.\n")
		return "sync not configured", nil
	}

	apps, err := opts.Store.ListApplications(ctx, &db.ApplicationFilters{Limit: db.MaxListLimit})
	if err != nil {
		return "", fmt.Errorf("failed to list applications for sync: %w", err)
	}
	if len(apps) == 0 {
		return "nothing to sync", nil
	}

	result, err := opts.Notion.SyncApplications(ctx, apps)
	if err != nil {
		return "", fmt.Errorf("failed to sync applications: %w", err)
	}

	summary.Synced = result.Synced()
	for _, syncErr := range result.Errors {
		summary.Errors = append(summary.Errors, fmt.Sprintf("notion: %v", syncErr))
	}
	fmt.Printf("  Synced %d applications (%d created, %d updated).\n", result.Synced(), result.Created, result.Updated)
	return fmt.Sprintf("synced %d applications", result.Synced()), nil
}
