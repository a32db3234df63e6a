package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
	"github.com/wayfarer-app/backend/testutil"
)

func newItineraryRepo(t *testing.T) repo.ItineraryRepo {
	t.Helper()
	r := repo.NewItineraryRepo(testutil.DataDir(t))
	require.NoError(t, r.Init())
	return r
}

func banffItinerary() domain.Itinerary {
	return domain.Itinerary{
		OwnerEmail:   "a@x.com",
		Title:        "Banff",
		Description:  "Rockies road trip",
		StartDate:    "06/01/2026",
		EndDate:      "06/15/2026",
		Destinations: "Banff, Lake Louise",
	}
}

func TestItineraryRepo_CreateAndGet(t *testing.T) {
	r := newItineraryRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, banffItinerary())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banff", got.Title)
	// The destinations field contains the delimiter and must round-trip.
	assert.Equal(t, "Banff, Lake Louise", got.Destinations)
	assert.NotNil(t, got.SharedWith)
	assert.Empty(t, got.SharedWith)
}

func TestItineraryRepo_GetByID_NotFound(t *testing.T) {
	r := newItineraryRepo(t)

	_, err := r.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryRepo_Update_MergesPartialFields(t *testing.T) {
	r := newItineraryRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, banffItinerary())
	require.NoError(t, err)

	title := "Banff & Jasper"
	updated, err := r.Update(ctx, created.ID, domain.ItineraryUpdate{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Banff & Jasper", updated.Title)
	assert.Equal(t, "06/01/2026", updated.StartDate) // preserved
	assert.Equal(t, "Rockies road trip", updated.Description)
}

func TestItineraryRepo_UpdateSharing_PersistsEmbeddedList(t *testing.T) {
	r := newItineraryRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, banffItinerary())
	require.NoError(t, err)

	shared := []domain.SharedUser{{
		Email: "b@x.com", Access: domain.AccessViewer,
		FriendName: "Bea", OwnerName: "Ada",
	}}
	require.NoError(t, r.UpdateSharing(ctx, created.ID, shared))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, shared, got.SharedWith)
}

func TestItineraryRepo_Delete(t *testing.T) {
	r := newItineraryRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, banffItinerary())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestItineraryRepo_CorruptSharedWithReadsAsUnshared(t *testing.T) {
	dir := testutil.DataDir(t)
	testutil.WriteTable(t, dir, "itineraries.csv",
		"itinerary_id,user_email,trip_title,trip_description,start_date,end_date,destinations,shared_with\n"+
			"it-1,a@x.com,Banff,,,,,not-json-at-all\n")
	r := repo.NewItineraryRepo(dir)

	got, err := r.GetByID(context.Background(), "it-1")

	require.NoError(t, err)
	require.NotNil(t, got.SharedWith)
	assert.Empty(t, got.SharedWith, "malformed shared_with means not shared with anyone")
}
