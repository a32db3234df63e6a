package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/store"
)

// itineraryHeader fixes the column order of the itineraries table. The
// shared_with column holds an embedded JSON array of
// {email, access, friend_name, owner_name} objects.
var itineraryHeader = []string{
	"itinerary_id", "user_email", "trip_title", "trip_description",
	"start_date", "end_date", "destinations", "shared_with",
}

// ItineraryRepo defines the persistence operations for Itineraries.
type ItineraryRepo interface {
	// Init creates the backing file if absent. Idempotent.
	Init() error

	// Create persists a new itinerary with a freshly assigned ID.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Itinerary, error)

	// List returns every itinerary; the visibility and active filters are
	// applied by the service on top of this full scan.
	List(ctx context.Context) ([]domain.Itinerary, error)

	// Update merges the partial update over the itinerary with the given ID
	// and returns the updated record. Returns domain.ErrNotFound if absent.
	Update(ctx context.Context, id string, up domain.ItineraryUpdate) (domain.Itinerary, error)

	// UpdateSharing replaces the embedded sharing list of the itinerary.
	// Returns domain.ErrNotFound if absent.
	UpdateSharing(ctx context.Context, id string, shared []domain.SharedUser) error

	// Delete removes an itinerary by ID.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// csvItineraryRepo is the flat-file implementation of ItineraryRepo.
type csvItineraryRepo struct {
	table *store.Table[domain.Itinerary]
}

// NewItineraryRepo constructs an ItineraryRepo over itineraries.csv in dataDir.
func NewItineraryRepo(dataDir string) ItineraryRepo {
	return &csvItineraryRepo{
		table: store.NewTable(
			filepath.Join(dataDir, "itineraries.csv"),
			itineraryHeader, encodeItinerary, decodeItinerary,
		),
	}
}

func (r *csvItineraryRepo) Init() error {
	return r.table.Init()
}

func (r *csvItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it.ID = uuid.NewString()
	if it.SharedWith == nil {
		it.SharedWith = []domain.SharedUser{}
	}
	if err := r.table.Append(ctx, it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return it, nil
}

func (r *csvItineraryRepo) GetByID(ctx context.Context, id string) (domain.Itinerary, error) {
	its, err := r.table.ReadAll(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	for _, it := range its {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *csvItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	its, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return its, nil
}

func (r *csvItineraryRepo) Update(ctx context.Context, id string, up domain.ItineraryUpdate) (domain.Itinerary, error) {
	var updated domain.Itinerary
	_, err := r.table.UpdateWhere(ctx,
		func(it domain.Itinerary) bool { return it.ID == id },
		func(it domain.Itinerary) domain.Itinerary {
			updated = up.Apply(it)
			return updated
		},
	)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *csvItineraryRepo) UpdateSharing(ctx context.Context, id string, shared []domain.SharedUser) error {
	if shared == nil {
		shared = []domain.SharedUser{}
	}
	_, err := r.table.UpdateWhere(ctx,
		func(it domain.Itinerary) bool { return it.ID == id },
		func(it domain.Itinerary) domain.Itinerary {
			it.SharedWith = shared
			return it
		},
	)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.UpdateSharing: %w", err)
	}
	return nil
}

func (r *csvItineraryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.table.DeleteWhere(ctx, func(it domain.Itinerary) bool { return it.ID == id })
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	return nil
}

// encodeItinerary maps a domain.Itinerary to CSV fields in itineraryHeader order.
func encodeItinerary(it domain.Itinerary) []string {
	return []string{
		it.ID, it.OwnerEmail, it.Title, it.Description,
		it.StartDate, it.EndDate, it.Destinations,
		store.EncodeJSONCell(it.SharedWith),
	}
}

// decodeItinerary maps CSV fields in itineraryHeader order back to a
// domain.Itinerary. A corrupt shared_with cell decodes as "not shared with
// anyone" rather than failing the row.
func decodeItinerary(f []string) (domain.Itinerary, error) {
	return domain.Itinerary{
		ID:           f[0],
		OwnerEmail:   f[1],
		Title:        f[2],
		Description:  f[3],
		StartDate:    f[4],
		EndDate:      f[5],
		Destinations: f[6],
		SharedWith:   store.DecodeJSONCell[domain.SharedUser]("itineraries", "shared_with", f[7]),
	}, nil
}
