package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/store"
)

// eventHeader fixes the column order of the events table. The tags column
// holds an embedded JSON array of strings.
var eventHeader = []string{
	"event_id", "itinerary_id", "title", "description", "address",
	"contact", "hours", "price", "rating", "rating_count", "tags",
	"image_path", "start_date", "start_time", "end_date", "end_time",
}

// EventRepo defines the persistence operations for Events.
type EventRepo interface {
	// Init creates the backing file if absent. Idempotent.
	Init() error

	// Create persists a new event with a freshly assigned ID.
	// Parent-itinerary existence is the service's responsibility.
	Create(ctx context.Context, ev domain.Event) (domain.Event, error)

	// ListByItinerary returns all events belonging to one itinerary.
	ListByItinerary(ctx context.Context, itineraryID string) ([]domain.Event, error)

	// List returns every event; the per-itinerary counts build on this.
	List(ctx context.Context) ([]domain.Event, error)

	// Delete removes an event by ID, scoped to the given itinerary.
	// Returns domain.ErrNotFound if no such event exists under that itinerary.
	Delete(ctx context.Context, itineraryID, eventID string) error

	// DeleteByItinerary removes every event belonging to an itinerary and
	// returns how many were removed. Zero is not an error — an itinerary
	// with no events is a normal state.
	DeleteByItinerary(ctx context.Context, itineraryID string) (int, error)
}

// csvEventRepo is the flat-file implementation of EventRepo.
type csvEventRepo struct {
	table *store.Table[domain.Event]
}

// NewEventRepo constructs an EventRepo over events.csv in dataDir.
func NewEventRepo(dataDir string) EventRepo {
	return &csvEventRepo{
		table: store.NewTable(
			filepath.Join(dataDir, "events.csv"),
			eventHeader, encodeEvent, decodeEvent,
		),
	}
}

func (r *csvEventRepo) Init() error {
	return r.table.Init()
}

func (r *csvEventRepo) Create(ctx context.Context, ev domain.Event) (domain.Event, error) {
	ev.ID = uuid.NewString()
	if ev.Tags == nil {
		ev.Tags = []string{}
	}
	if err := r.table.Append(ctx, ev); err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return ev, nil
}

func (r *csvEventRepo) ListByItinerary(ctx context.Context, itineraryID string) ([]domain.Event, error) {
	all, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByItinerary: %w", err)
	}
	events := []domain.Event{}
	for _, ev := range all {
		if ev.ItineraryID == itineraryID {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (r *csvEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	events, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	return events, nil
}

func (r *csvEventRepo) Delete(ctx context.Context, itineraryID, eventID string) error {
	_, err := r.table.DeleteWhere(ctx, func(ev domain.Event) bool {
		return ev.ID == eventID && ev.ItineraryID == itineraryID
	})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	return nil
}

func (r *csvEventRepo) DeleteByItinerary(ctx context.Context, itineraryID string) (int, error) {
	n, err := r.table.DeleteWhere(ctx, func(ev domain.Event) bool {
		return ev.ItineraryID == itineraryID
	})
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repo.EventRepo.DeleteByItinerary: %w", err)
	}
	return n, nil
}

// encodeEvent maps a domain.Event to CSV fields in eventHeader order.
func encodeEvent(ev domain.Event) []string {
	return []string{
		ev.ID, ev.ItineraryID, ev.Title, ev.Description, ev.Address,
		ev.Contact, ev.Hours, ev.Price, ev.Rating, ev.RatingCount,
		store.EncodeJSONCell(ev.Tags),
		ev.ImagePath, ev.StartDate, ev.StartTime, ev.EndDate, ev.EndTime,
	}
}

// decodeEvent maps CSV fields in eventHeader order back to a domain.Event.
func decodeEvent(f []string) (domain.Event, error) {
	return domain.Event{
		ID:          f[0],
		ItineraryID: f[1],
		Title:       f[2],
		Description: f[3],
		Address:     f[4],
		Contact:     f[5],
		Hours:       f[6],
		Price:       f[7],
		Rating:      f[8],
		RatingCount: f[9],
		Tags:        store.DecodeJSONCell[string]("events", "tags", f[10]),
		ImagePath:   f[11],
		StartDate:   f[12],
		StartTime:   f[13],
		EndDate:     f[14],
		EndTime:     f[15],
	}, nil
}
