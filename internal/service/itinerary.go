package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
)

// ItineraryService implements itinerary CRUD, the sharing model, and the
// visibility/active query facade. It holds the users repo because sharing
// must resolve the friend's email to a live account, and the events repo
// because deleting an itinerary removes its events.
//
// Authorization note: operations on an itinerary the requester cannot see
// return domain.ErrNotFound rather than a dedicated forbidden error, so
// the API never confirms the existence of someone else's itinerary.
// Operations a visible-but-read-only user attempts return
// domain.ErrValidation naming the access rule.
type ItineraryService struct {
	itineraries repo.ItineraryRepo
	users       repo.UserRepo
	events      repo.EventRepo

	// now is stubbed in tests to pin the active/past boundary.
	now func() time.Time
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(itineraries repo.ItineraryRepo, users repo.UserRepo, events repo.EventRepo) *ItineraryService {
	return &ItineraryService{
		itineraries: itineraries,
		users:       users,
		events:      events,
		now:         time.Now,
	}
}

// Create validates and persists a new itinerary owned by it.OwnerEmail.
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if strings.TrimSpace(it.Title) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: trip title is required", domain.ErrValidation)
	}
	if err := validateTripDates(it.StartDate, it.EndDate); err != nil {
		return domain.Itinerary{}, err
	}
	if _, err := s.users.GetByEmail(ctx, it.OwnerEmail); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: owner: %w", err)
	}
	it.SharedWith = []domain.SharedUser{}

	created, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return created, nil
}

// VisibleTo returns every itinerary the given user may see: the ones they
// own plus the ones shared with them, at either access level.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) VisibleTo(ctx context.Context, email string) ([]domain.Itinerary, error) {
	all, err := s.itineraries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.VisibleTo: %w", err)
	}
	visible := []domain.Itinerary{}
	for _, it := range all {
		if it.VisibleTo(email) {
			visible = append(visible, it)
		}
	}
	return visible, nil
}

// ActiveFor returns the itineraries the given user owns whose end date is
// today or later, or that have no end date yet.
func (s *ItineraryService) ActiveFor(ctx context.Context, email string) ([]domain.Itinerary, error) {
	all, err := s.itineraries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ActiveFor: %w", err)
	}
	active := []domain.Itinerary{}
	for _, it := range all {
		if it.OwnerEmail == email && domain.Active(it.EndDate, s.now()) {
			active = append(active, it)
		}
	}
	return active, nil
}

// Get returns a single itinerary if the requester may see it.
func (s *ItineraryService) Get(ctx context.Context, id, requester string) (domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	if !it.VisibleTo(requester) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", domain.ErrNotFound)
	}
	return it, nil
}

// Update merges a partial update over the itinerary. Owner only.
func (s *ItineraryService) Update(ctx context.Context, id, requester string, up domain.ItineraryUpdate) (domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	if it.OwnerEmail != requester {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", domain.ErrNotFound)
	}
	merged := up.Apply(it)
	if strings.TrimSpace(merged.Title) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: trip title is required", domain.ErrValidation)
	}
	if err := validateTripDates(merged.StartDate, merged.EndDate); err != nil {
		return domain.Itinerary{}, err
	}

	updated, err := s.itineraries.Update(ctx, id, up)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an itinerary and all of its events. Owner only.
// The itinerary row is removed first; a crash between the two deletes
// leaves orphaned events, which readers already tolerate and a retry of
// the cascade cleans up.
func (s *ItineraryService) Delete(ctx context.Context, id, requester string) error {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if it.OwnerEmail != requester {
		return fmt.Errorf("service.ItineraryService.Delete: %w", domain.ErrNotFound)
	}
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if _, err := s.events.DeleteByItinerary(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: events: %w", err)
	}
	return nil
}

// Share grants friendEmail access to the itinerary, or updates the access
// level in place if they are already on the sharing list. Owner only.
// The friend must resolve to a live account.
func (s *ItineraryService) Share(ctx context.Context, id, requester, friendEmail, access, friendName, ownerName string) error {
	if !domain.ValidAccess(access) {
		return fmt.Errorf("%w: access must be %q or %q", domain.ErrValidation, domain.AccessViewer, domain.AccessTripMate)
	}
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Share: %w", err)
	}
	if it.OwnerEmail != requester {
		return fmt.Errorf("service.ItineraryService.Share: %w", domain.ErrNotFound)
	}
	if friendEmail == it.OwnerEmail {
		return fmt.Errorf("%w: cannot share an itinerary with its owner", domain.ErrValidation)
	}
	if _, err := s.users.GetByEmail(ctx, friendEmail); err != nil {
		return fmt.Errorf("service.ItineraryService.Share: friend: %w", err)
	}

	shared := it.SharedWith
	found := false
	for i, su := range shared {
		if su.Email == friendEmail {
			shared[i].Access = access
			found = true
			break
		}
	}
	if !found {
		shared = append(shared, domain.SharedUser{
			Email:      friendEmail,
			Access:     access,
			FriendName: friendName,
			OwnerName:  ownerName,
		})
	}

	if err := s.itineraries.UpdateSharing(ctx, id, shared); err != nil {
		return fmt.Errorf("service.ItineraryService.Share: %w", err)
	}
	return nil
}

// Unshare removes target from the sharing list. The owner may revoke
// anyone; a shared user may remove only themselves. Removing an email that
// is not on the list is a no-op, so revocation is idempotent.
func (s *ItineraryService) Unshare(ctx context.Context, id, requester, target string) error {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Unshare: %w", err)
	}
	if it.OwnerEmail != requester && requester != target {
		return fmt.Errorf("service.ItineraryService.Unshare: %w", domain.ErrNotFound)
	}

	shared := []domain.SharedUser{}
	removed := false
	for _, su := range it.SharedWith {
		if su.Email == target {
			removed = true
			continue
		}
		shared = append(shared, su)
	}
	if !removed {
		return nil
	}

	if err := s.itineraries.UpdateSharing(ctx, id, shared); err != nil {
		return fmt.Errorf("service.ItineraryService.Unshare: %w", err)
	}
	return nil
}

// validateTripDates checks that any provided date parses as MM/DD/YYYY.
// Empty dates are allowed — an itinerary may be created before its dates
// are settled.
func validateTripDates(start, end string) error {
	if start != "" {
		if _, err := domain.ParseTripDate(start); err != nil {
			return err
		}
	}
	if end != "" {
		if _, err := domain.ParseTripDate(end); err != nil {
			return err
		}
	}
	return nil
}
