package service_test

import (
	"context"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset field
// panics, which is exactly what you want from an unexpected call.

type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByEmail    func(ctx context.Context, email string) (domain.User, error)
	getByPhone    func(ctx context.Context, phone string) (domain.User, error)
	list          func(ctx context.Context) ([]domain.User, error)
	update        func(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error)
	updateFriends func(ctx context.Context, email string, friends []domain.Friend) error
}

func (m *mockUserRepo) Init() error { return nil }
func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	return m.getByPhone(ctx, phone)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error) {
	return m.update(ctx, email, up)
}
func (m *mockUserRepo) UpdateFriends(ctx context.Context, email string, friends []domain.Friend) error {
	return m.updateFriends(ctx, email, friends)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockItineraryRepo struct {
	create        func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID       func(ctx context.Context, id string) (domain.Itinerary, error)
	list          func(ctx context.Context) ([]domain.Itinerary, error)
	update        func(ctx context.Context, id string, up domain.ItineraryUpdate) (domain.Itinerary, error)
	updateSharing func(ctx context.Context, id string, shared []domain.SharedUser) error
	delete        func(ctx context.Context, id string) error
}

func (m *mockItineraryRepo) Init() error { return nil }
func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id string) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	return m.list(ctx)
}
func (m *mockItineraryRepo) Update(ctx context.Context, id string, up domain.ItineraryUpdate) (domain.Itinerary, error) {
	return m.update(ctx, id, up)
}
func (m *mockItineraryRepo) UpdateSharing(ctx context.Context, id string, shared []domain.SharedUser) error {
	return m.updateSharing(ctx, id, shared)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

type mockEventRepo struct {
	create            func(ctx context.Context, ev domain.Event) (domain.Event, error)
	listByItinerary   func(ctx context.Context, itineraryID string) ([]domain.Event, error)
	list              func(ctx context.Context) ([]domain.Event, error)
	delete            func(ctx context.Context, itineraryID, eventID string) error
	deleteByItinerary func(ctx context.Context, itineraryID string) (int, error)
}

func (m *mockEventRepo) Init() error { return nil }
func (m *mockEventRepo) Create(ctx context.Context, ev domain.Event) (domain.Event, error) {
	return m.create(ctx, ev)
}
func (m *mockEventRepo) ListByItinerary(ctx context.Context, itineraryID string) ([]domain.Event, error) {
	return m.listByItinerary(ctx, itineraryID)
}
func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	return m.list(ctx)
}
func (m *mockEventRepo) Delete(ctx context.Context, itineraryID, eventID string) error {
	return m.delete(ctx, itineraryID, eventID)
}
func (m *mockEventRepo) DeleteByItinerary(ctx context.Context, itineraryID string) (int, error) {
	return m.deleteByItinerary(ctx, itineraryID)
}

var _ repo.EventRepo = (*mockEventRepo)(nil)

type mockFriendRequestRepo struct {
	create  func(ctx context.Context, from, to string) (domain.FriendRequest, error)
	getByID func(ctx context.Context, id string) (domain.FriendRequest, error)
	listTo  func(ctx context.Context, email string) ([]domain.FriendRequest, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockFriendRequestRepo) Init() error { return nil }
func (m *mockFriendRequestRepo) Create(ctx context.Context, from, to string) (domain.FriendRequest, error) {
	return m.create(ctx, from, to)
}
func (m *mockFriendRequestRepo) GetByID(ctx context.Context, id string) (domain.FriendRequest, error) {
	return m.getByID(ctx, id)
}
func (m *mockFriendRequestRepo) ListTo(ctx context.Context, email string) ([]domain.FriendRequest, error) {
	return m.listTo(ctx, email)
}
func (m *mockFriendRequestRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ repo.FriendRequestRepo = (*mockFriendRequestRepo)(nil)

// ---- canned repo behaviors --------------------------------------------------

// usersWith returns a mockUserRepo that resolves exactly the given users by
// email and echoes Create calls back.
func usersWith(users ...domain.User) *mockUserRepo {
	byEmail := map[string]domain.User{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) { return u, nil },
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			u, ok := byEmail[email]
			if !ok {
				return domain.User{}, domain.ErrNotFound
			}
			return u, nil
		},
		list: func(context.Context) ([]domain.User, error) {
			all := []domain.User{}
			for _, u := range byEmail {
				all = append(all, u)
			}
			return all, nil
		},
	}
}

// itinerariesWith returns a mockItineraryRepo that resolves the given
// itineraries by ID and lists them all.
func itinerariesWith(its ...domain.Itinerary) *mockItineraryRepo {
	byID := map[string]domain.Itinerary{}
	for _, it := range its {
		byID[it.ID] = it
	}
	return &mockItineraryRepo{
		getByID: func(_ context.Context, id string) (domain.Itinerary, error) {
			it, ok := byID[id]
			if !ok {
				return domain.Itinerary{}, domain.ErrNotFound
			}
			return it, nil
		},
		list: func(context.Context) ([]domain.Itinerary, error) {
			all := []domain.Itinerary{}
			for _, it := range byID {
				all = append(all, it)
			}
			return all, nil
		},
	}
}
