package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
)

// EventService implements event operations. It holds the itineraries repo
// because every event operation re-checks the requester's access to the
// parent itinerary: viewers may list events, but only the owner and
// trip-mates may add or delete them.
type EventService struct {
	events      repo.EventRepo
	itineraries repo.ItineraryRepo

	now func() time.Time
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(events repo.EventRepo, itineraries repo.ItineraryRepo) *EventService {
	return &EventService{events: events, itineraries: itineraries, now: time.Now}
}

// Create validates the event, verifies the parent itinerary exists and the
// requester may write to it, then persists.
func (s *EventService) Create(ctx context.Context, requester string, ev domain.Event) (domain.Event, error) {
	if strings.TrimSpace(ev.Title) == "" {
		return domain.Event{}, fmt.Errorf("%w: event title is required", domain.ErrValidation)
	}
	if err := s.authorizeWrite(ctx, ev.ItineraryID, requester); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}

	created, err := s.events.Create(ctx, ev)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return created, nil
}

// ListByItinerary returns all events on an itinerary the requester may see.
// Always returns a non-nil slice so callers can safely range over it.
func (s *EventService) ListByItinerary(ctx context.Context, requester, itineraryID string) ([]domain.Event, error) {
	it, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListByItinerary: %w", err)
	}
	if !it.VisibleTo(requester) {
		return nil, fmt.Errorf("service.EventService.ListByItinerary: %w", domain.ErrNotFound)
	}

	events, err := s.events.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListByItinerary: %w", err)
	}
	return events, nil
}

// Counts returns a map of itinerary ID to event count. With ownerEmail set
// and activeOnly true, only events on that owner's active itineraries are
// counted — the figure the client's home screen shows.
func (s *EventService) Counts(ctx context.Context, ownerEmail string, activeOnly bool) (map[string]int, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.Counts: %w", err)
	}

	var include map[string]bool
	if activeOnly {
		its, err := s.itineraries.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.EventService.Counts: %w", err)
		}
		include = map[string]bool{}
		for _, it := range its {
			if it.OwnerEmail == ownerEmail && domain.Active(it.EndDate, s.now()) {
				include[it.ID] = true
			}
		}
	}

	counts := map[string]int{}
	for _, ev := range events {
		if include != nil && !include[ev.ItineraryID] {
			continue
		}
		counts[ev.ItineraryID]++
	}
	return counts, nil
}

// Delete removes an event from an itinerary the requester may write to.
func (s *EventService) Delete(ctx context.Context, requester, itineraryID, eventID string) error {
	if err := s.authorizeWrite(ctx, itineraryID, requester); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	if err := s.events.Delete(ctx, itineraryID, eventID); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// authorizeWrite resolves the itinerary and checks event-write access.
// Invisible itineraries report ErrNotFound; visible-but-viewer access
// reports ErrValidation naming the rule.
func (s *EventService) authorizeWrite(ctx context.Context, itineraryID, requester string) error {
	it, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return err
	}
	if !it.VisibleTo(requester) {
		return domain.ErrNotFound
	}
	if !it.CanEditEvents(requester) {
		return fmt.Errorf("%w: viewer access is read-only", domain.ErrValidation)
	}
	return nil
}
