package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/types"
)

func strPtr(s string) *string { return &s }

func createTestApplication(t *testing.T, store *Store, company, position string) *Application {
	t.Helper()

	app, err := store.CreateApplication(context.Background(), &ApplicationCreateInput{
		Company:  company,
		Position: position,
	})
	require.NoError(t, err)
	return app
}

func TestCreateApplication_Defaults(t *testing.T) {
	store := newTestStore(t)

	app := createTestApplication(t, store, "Initech", "Software Engineer")

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, types.StatusApplied, app.Status)
	assert.Equal(t, types.PriorityMedium, app.Priority)
	assert.Equal(t, time.Now().Format("2006-01-02"), app.ApplicationDate)
	assert.Equal(t, "manual", app.Source)
	assert.NotEmpty(t, app.CreatedAt)
	assert.Equal(t, app.CreatedAt, app.UpdatedAt)
}

func TestCreateApplication_ExplicitFields(t *testing.T) {
	store := newTestStore(t)

	app, err := store.CreateApplication(context.Background(), &ApplicationCreateInput{
		Company:         "Hooli",
		Position:        "Staff Engineer",
		Location:        "Remote",
		ApplicationDate: "2026-08-01",
		Status:          types.StatusNew,
		Priority:        types.PriorityHigh,
		Source:          "job_search",
	})
	require.NoError(t, err)

	got, err := store.GetApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hooli", got.Company)
	assert.Equal(t, types.StatusNew, got.Status)
	assert.Equal(t, types.PriorityHigh, got.Priority)
	assert.Equal(t, "2026-08-01", got.ApplicationDate)
	assert.Equal(t, "job_search", got.Source)
}

func TestCreateApplication_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateApplication(ctx, &ApplicationCreateInput{Position: "Engineer"})
	assert.ErrorContains(t, err, "required")

	_, err = store.CreateApplication(ctx, &ApplicationCreateInput{
		Company: "Initech", Position: "Engineer", Status: "daydreaming",
	})
	assert.ErrorContains(t, err, "invalid status")

	_, err = store.CreateApplication(ctx, &ApplicationCreateInput{
		Company: "Initech", Position: "Engineer", Priority: "urgent",
	})
	assert.ErrorContains(t, err, "invalid priority")
}

func TestGetApplication_NotFound(t *testing.T) {
	store := newTestStore(t)

	app, err := store.GetApplication(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestListApplications_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mk := func(company, position, status, priority, date string) {
		_, err := store.CreateApplication(ctx, &ApplicationCreateInput{
			Company: company, Position: position, Status: status,
			Priority: priority, ApplicationDate: date,
		})
		require.NoError(t, err)
	}
	mk("Initech", "Engineer", types.StatusApplied, types.PriorityHigh, "2026-08-01")
	mk("Initech", "Senior Engineer", types.StatusRejected, types.PriorityMedium, "2026-08-03")
	mk("Hooli", "Engineer", types.StatusApplied, types.PriorityLow, "2026-08-02")

	all, err := store.ListApplications(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest application date first
	assert.Equal(t, "2026-08-03", all[0].ApplicationDate)
	assert.Equal(t, "2026-08-01", all[2].ApplicationDate)

	applied, err := store.ListApplications(ctx, &ApplicationFilters{Status: types.StatusApplied})
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	initech, err := store.ListApplications(ctx, &ApplicationFilters{Company: "init"})
	require.NoError(t, err)
	assert.Len(t, initech, 2)

	high, err := store.ListApplications(ctx, &ApplicationFilters{Priority: types.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Initech", high[0].Company)

	limited, err := store.ListApplications(ctx, &ApplicationFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	offset, err := store.ListApplications(ctx, &ApplicationFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, offset, 1)
}

func TestUpdateApplication(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	app := createTestApplication(t, store, "Initech", "Engineer")

	updated, err := store.UpdateApplication(ctx, app.ID, &ApplicationUpdateInput{
		Status:          strPtr(types.StatusRejected),
		RejectionReason: strPtr("position filled"),
		Notes:           strPtr("heard back after 3 weeks"),
	})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := store.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRejected, got.Status)
	assert.Equal(t, "position filled", got.RejectionReason)
	assert.Equal(t, "heard back after 3 weeks", got.Notes)
	// Untouched fields survive
	assert.Equal(t, "Initech", got.Company)
	assert.GreaterOrEqual(t, got.UpdatedAt, got.CreatedAt)
}

func TestUpdateApplication_InvalidStatus(t *testing.T) {
	store := newTestStore(t)
	app := createTestApplication(t, store, "Initech", "Engineer")

	_, err := store.UpdateApplication(context.Background(), app.ID, &ApplicationUpdateInput{
		Status: strPtr("ghosted"),
	})
	assert.ErrorContains(t, err, "invalid status")
}

func TestUpdateApplication_NotFound(t *testing.T) {
	store := newTestStore(t)

	updated, err := store.UpdateApplication(context.Background(), "no-such-id", &ApplicationUpdateInput{
		Notes: strPtr("hello"),
	})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestUpdateStatusAndFollowUp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	app := createTestApplication(t, store, "Initech", "Engineer")

	ok, err := store.UpdateStatus(ctx, app.ID, types.StatusUnderReview)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetFollowUpDate(ctx, app.ID, "2026-09-01")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnderReview, got.Status)
	assert.Equal(t, "2026-09-01", got.FollowUpDate)
}

func TestDeleteApplication_CascadesInterviews(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	app := createTestApplication(t, store, "Initech", "Engineer")

	_, err := store.AddInterview(ctx, &InterviewCreateInput{
		ApplicationID: app.ID,
		InterviewType: types.InterviewPhone,
	})
	require.NoError(t, err)

	deleted, err := store.DeleteApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	interviews, err := store.ListInterviews(ctx, app.ID)
	require.NoError(t, err)
	assert.Empty(t, interviews)

	deleted, err = store.DeleteApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFindByCompanyPosition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestApplication(t, store, "Initech", "Engineer")

	found, err := store.FindByCompanyPosition(ctx, "Initech", "Engineer")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Initech", found.Company)

	missing, err := store.FindByCompanyPosition(ctx, "Initech", "Designer")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFollowUpsDue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mk := func(company, status, followUp string) {
		_, err := store.CreateApplication(ctx, &ApplicationCreateInput{
			Company: company, Position: "Engineer", Status: status, FollowUpDate: followUp,
		})
		require.NoError(t, err)
	}

	soon := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	later := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	distant := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	mk("Later Corp", types.StatusApplied, later)
	mk("Soon Corp", types.StatusUnderReview, soon)
	mk("Distant Corp", types.StatusApplied, distant)
	mk("Rejected Corp", types.StatusRejected, soon)
	mk("No Date Corp", types.StatusApplied, "")

	due, err := store.FollowUpsDue(ctx, 7)
	require.NoError(t, err)
	require.Len(t, due, 2)
	// Soonest follow-up first
	assert.Equal(t, "Soon Corp", due[0].Company)
	assert.Equal(t, "Later Corp", due[1].Company)
}

func TestCountApplicationsOn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.CreateApplication(ctx, &ApplicationCreateInput{
			Company: "Initech", Position: "Engineer", ApplicationDate: "2026-08-20",
		})
		require.NoError(t, err)
	}
	_, err := store.CreateApplication(ctx, &ApplicationCreateInput{
		Company: "Hooli", Position: "Engineer", ApplicationDate: "2026-08-21",
	})
	require.NoError(t, err)

	count, err := store.CountApplicationsOn(ctx, "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = store.CountApplicationsOn(ctx, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddInterview(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	app := createTestApplication(t, store, "Initech", "Engineer")

	iv, err := store.AddInterview(ctx, &InterviewCreateInput{
		ApplicationID:    app.ID,
		InterviewDate:    "2026-08-28",
		InterviewType:    types.InterviewVideo,
		InterviewerName:  "Pat Doe",
		InterviewerTitle: "Engineering Manager",
		PreparationNotes: "review system design basics",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, iv.ID)

	interviews, err := store.ListInterviews(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, "Pat Doe", interviews[0].InterviewerName)
	assert.Equal(t, types.InterviewVideo, interviews[0].InterviewType)
}

func TestAddInterview_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddInterview(ctx, &InterviewCreateInput{InterviewType: types.InterviewPhone})
	assert.ErrorContains(t, err, "application ID is required")

	app := createTestApplication(t, store, "Initech", "Engineer")
	_, err = store.AddInterview(ctx, &InterviewCreateInput{
		ApplicationID: app.ID,
		InterviewType: "carrier-pigeon",
	})
	assert.ErrorContains(t, err, "invalid interview type")
}
