package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/service"
)

func newEventService(events *mockEventRepo, its *mockItineraryRepo) *service.EventService {
	if events == nil {
		events = &mockEventRepo{}
	}
	if its == nil {
		its = itinerariesWith(sharedItinerary())
	}
	return service.NewEventService(events, its)
}

// ---- Create ----------------------------------------------------------------

func TestEventService_Create_OwnerAndTripMateMayWrite(t *testing.T) {
	events := &mockEventRepo{
		create: func(_ context.Context, ev domain.Event) (domain.Event, error) {
			ev.ID = "ev-new"
			return ev, nil
		},
	}
	svc := newEventService(events, nil)

	for _, email := range []string{owner, tripMate} {
		got, err := svc.Create(context.Background(), email, domain.Event{
			ItineraryID: "it-1", Title: "Moraine Lake hike",
		})
		require.NoError(t, err, "email: %s", email)
		assert.Equal(t, "ev-new", got.ID)
	}
}

func TestEventService_Create_ViewerIsReadOnly(t *testing.T) {
	svc := newEventService(nil, nil)

	_, err := svc.Create(context.Background(), viewer, domain.Event{
		ItineraryID: "it-1", Title: "Moraine Lake hike",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventService_Create_InvisibleItineraryLooksAbsent(t *testing.T) {
	svc := newEventService(nil, nil)

	_, err := svc.Create(context.Background(), stranger, domain.Event{
		ItineraryID: "it-1", Title: "Moraine Lake hike",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_Create_RejectsBlankTitle(t *testing.T) {
	svc := newEventService(nil, nil)

	_, err := svc.Create(context.Background(), owner, domain.Event{ItineraryID: "it-1", Title: " "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- ListByItinerary -------------------------------------------------------

func TestEventService_ListByItinerary_ViewerMayRead(t *testing.T) {
	events := &mockEventRepo{
		listByItinerary: func(_ context.Context, itineraryID string) ([]domain.Event, error) {
			return []domain.Event{{ID: "ev-1", ItineraryID: itineraryID}}, nil
		},
	}
	svc := newEventService(events, nil)

	got, err := svc.ListByItinerary(context.Background(), viewer, "it-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ev-1", got[0].ID)
}

func TestEventService_ListByItinerary_StrangerLooksAbsent(t *testing.T) {
	svc := newEventService(nil, nil)

	_, err := svc.ListByItinerary(context.Background(), stranger, "it-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Counts ----------------------------------------------------------------

func TestEventService_Counts_All(t *testing.T) {
	events := &mockEventRepo{
		list: func(context.Context) ([]domain.Event, error) {
			return []domain.Event{
				{ID: "1", ItineraryID: "it-1"},
				{ID: "2", ItineraryID: "it-1"},
				{ID: "3", ItineraryID: "it-2"},
			}, nil
		},
	}
	svc := newEventService(events, nil)

	counts, err := svc.Counts(context.Background(), "", false)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"it-1": 2, "it-2": 1}, counts)
}

func TestEventService_Counts_ActiveOnlyFiltersByOwnerAndDate(t *testing.T) {
	events := &mockEventRepo{
		list: func(context.Context) ([]domain.Event, error) {
			return []domain.Event{
				{ID: "1", ItineraryID: "current"},
				{ID: "2", ItineraryID: "past"},
				{ID: "3", ItineraryID: "other"},
			}, nil
		},
	}
	its := itinerariesWith(
		domain.Itinerary{ID: "current", OwnerEmail: owner, EndDate: "07/15/2026"},
		domain.Itinerary{ID: "past", OwnerEmail: owner, EndDate: "06/15/2026"},
		domain.Itinerary{ID: "other", OwnerEmail: stranger, EndDate: "07/15/2026"},
	)
	svc := newEventService(events, its)
	svc.SetClock(func() time.Time { return time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC) })

	counts, err := svc.Counts(context.Background(), owner, true)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"current": 1}, counts)
}

// ---- Delete ----------------------------------------------------------------

func TestEventService_Delete_AuthorizedAndScoped(t *testing.T) {
	events := &mockEventRepo{
		delete: func(_ context.Context, itineraryID, eventID string) error {
			if itineraryID == "it-1" && eventID == "ev-1" {
				return nil
			}
			return domain.ErrNotFound
		},
	}
	svc := newEventService(events, nil)
	ctx := context.Background()

	assert.NoError(t, svc.Delete(ctx, tripMate, "it-1", "ev-1"))
	assert.ErrorIs(t, svc.Delete(ctx, owner, "it-1", "ev-ghost"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, viewer, "it-1", "ev-1"), domain.ErrValidation)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, "it-1", "ev-1"), domain.ErrNotFound)
}
