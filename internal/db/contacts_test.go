package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/job-search-agent/internal/types"
)

func TestCreateContact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	contact, err := store.CreateContact(ctx, &types.Contact{
		Name:              "Jamie Rivera",
		Company:           "Initech",
		Role:              "Technical Recruiter",
		Email:             "jamie@initech.example",
		ConnectionType:    types.ConnectionRecruiter,
		MutualConnections: "Pat Doe",
		SharedExperience:  "both attended GopherCon",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)

	got, err := store.GetContact(ctx, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jamie Rivera", got.Name)
	assert.Equal(t, types.ConnectionRecruiter, got.ConnectionType)

	domain := got.ToContact()
	assert.Equal(t, "Initech", domain.Company)
	assert.Equal(t, "Pat Doe", domain.MutualConnections)
}

func TestCreateContact_DefaultsAndValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	contact, err := store.CreateContact(ctx, &types.Contact{Name: "Sam", Company: "Hooli"})
	require.NoError(t, err)
	assert.Equal(t, types.ConnectionRecruiter, contact.ConnectionType)

	_, err = store.CreateContact(ctx, &types.Contact{Company: "Hooli"})
	assert.ErrorContains(t, err, "name is required")

	_, err = store.CreateContact(ctx, &types.Contact{Name: "Sam", ConnectionType: "pen pal"})
	assert.ErrorContains(t, err, "invalid connection type")
}

func TestListContacts_CompanyFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, c := range []types.Contact{
		{Name: "A", Company: "Initech"},
		{Name: "B", Company: "Initrode"},
		{Name: "C", Company: "Hooli"},
	} {
		contact := c
		_, err := store.CreateContact(ctx, &contact)
		require.NoError(t, err)
	}

	all, err := store.ListContacts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	init, err := store.ListContacts(ctx, "Init")
	require.NoError(t, err)
	assert.Len(t, init, 2)
}

func TestGetContact_NotFound(t *testing.T) {
	store := newTestStore(t)

	contact, err := store.GetContact(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, contact)
}

func TestUpsertCompanyProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.UpsertCompanyProfile(ctx, &types.CompanyProfile{
		Company:    "Initech",
		Summary:    "Makes TPS report software.",
		Tone:       "formal",
		Values:     []string{"process", "compliance"},
		SourceURLs: []string{"https://initech.example/about"},
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	// Second upsert refreshes content but keeps the original row
	second, err := store.UpsertCompanyProfile(ctx, &types.CompanyProfile{
		Company: "Initech",
		Summary: "Enterprise workflow software.",
		Values:  []string{"innovation"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Enterprise workflow software.", second.Summary)
	assert.Equal(t, StringArray{"innovation"}, second.Values)

	profiles, err := store.ListCompanyProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	domain := second.ToProfile()
	assert.Equal(t, []string{"innovation"}, domain.Values)
}

func TestGetCompanyProfile_NotFound(t *testing.T) {
	store := newTestStore(t)

	profile, err := store.GetCompanyProfile(context.Background(), "Nowhere Inc")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
