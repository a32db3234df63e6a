package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/handler"
)

// Hand-written test doubles for the servicer interfaces. Each method is a
// function field — set only the ones your test needs.

type mockUserServicer struct {
	signup        func(ctx context.Context, email, password string) (domain.User, error)
	login         func(ctx context.Context, email, password string) (domain.User, error)
	updateProfile func(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error)
	findByPhone   func(ctx context.Context, phone string) (domain.User, error)
}

func (m *mockUserServicer) Signup(ctx context.Context, email, password string) (domain.User, error) {
	return m.signup(ctx, email, password)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error) {
	return m.updateProfile(ctx, email, up)
}
func (m *mockUserServicer) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	return m.findByPhone(ctx, phone)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockItineraryServicer struct {
	create    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	visibleTo func(ctx context.Context, email string) ([]domain.Itinerary, error)
	activeFor func(ctx context.Context, email string) ([]domain.Itinerary, error)
	update    func(ctx context.Context, id, requester string, up domain.ItineraryUpdate) (domain.Itinerary, error)
	delete    func(ctx context.Context, id, requester string) error
	share     func(ctx context.Context, id, requester, friendEmail, access, friendName, ownerName string) error
	unshare   func(ctx context.Context, id, requester, target string) error
}

func (m *mockItineraryServicer) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryServicer) VisibleTo(ctx context.Context, email string) ([]domain.Itinerary, error) {
	return m.visibleTo(ctx, email)
}
func (m *mockItineraryServicer) ActiveFor(ctx context.Context, email string) ([]domain.Itinerary, error) {
	return m.activeFor(ctx, email)
}
func (m *mockItineraryServicer) Update(ctx context.Context, id, requester string, up domain.ItineraryUpdate) (domain.Itinerary, error) {
	return m.update(ctx, id, requester, up)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id, requester string) error {
	return m.delete(ctx, id, requester)
}
func (m *mockItineraryServicer) Share(ctx context.Context, id, requester, friendEmail, access, friendName, ownerName string) error {
	return m.share(ctx, id, requester, friendEmail, access, friendName, ownerName)
}
func (m *mockItineraryServicer) Unshare(ctx context.Context, id, requester, target string) error {
	return m.unshare(ctx, id, requester, target)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockEventServicer struct {
	create          func(ctx context.Context, requester string, ev domain.Event) (domain.Event, error)
	listByItinerary func(ctx context.Context, requester, itineraryID string) ([]domain.Event, error)
	counts          func(ctx context.Context, ownerEmail string, activeOnly bool) (map[string]int, error)
	delete          func(ctx context.Context, requester, itineraryID, eventID string) error
}

func (m *mockEventServicer) Create(ctx context.Context, requester string, ev domain.Event) (domain.Event, error) {
	return m.create(ctx, requester, ev)
}
func (m *mockEventServicer) ListByItinerary(ctx context.Context, requester, itineraryID string) ([]domain.Event, error) {
	return m.listByItinerary(ctx, requester, itineraryID)
}
func (m *mockEventServicer) Counts(ctx context.Context, ownerEmail string, activeOnly bool) (map[string]int, error) {
	return m.counts(ctx, ownerEmail, activeOnly)
}
func (m *mockEventServicer) Delete(ctx context.Context, requester, itineraryID, eventID string) error {
	return m.delete(ctx, requester, itineraryID, eventID)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

type mockFriendServicer struct {
	friends      func(ctx context.Context, email string) ([]domain.FriendProfile, error)
	addFriend    func(ctx context.Context, userEmail, friendEmail string) error
	removeFriend func(ctx context.Context, userEmail, friendEmail string) error
	setFavorite  func(ctx context.Context, userEmail, friendEmail string, favorite bool) error
	sendRequest  func(ctx context.Context, from, to string) (domain.FriendRequest, error)
	listIncoming func(ctx context.Context, email string) ([]domain.FriendRequest, error)
	accept       func(ctx context.Context, id, from, to string) error
	decline      func(ctx context.Context, id string) error
}

func (m *mockFriendServicer) Friends(ctx context.Context, email string) ([]domain.FriendProfile, error) {
	return m.friends(ctx, email)
}
func (m *mockFriendServicer) AddFriend(ctx context.Context, userEmail, friendEmail string) error {
	return m.addFriend(ctx, userEmail, friendEmail)
}
func (m *mockFriendServicer) RemoveFriend(ctx context.Context, userEmail, friendEmail string) error {
	return m.removeFriend(ctx, userEmail, friendEmail)
}
func (m *mockFriendServicer) SetFavorite(ctx context.Context, userEmail, friendEmail string, favorite bool) error {
	return m.setFavorite(ctx, userEmail, friendEmail, favorite)
}
func (m *mockFriendServicer) SendRequest(ctx context.Context, from, to string) (domain.FriendRequest, error) {
	return m.sendRequest(ctx, from, to)
}
func (m *mockFriendServicer) ListIncoming(ctx context.Context, email string) ([]domain.FriendRequest, error) {
	return m.listIncoming(ctx, email)
}
func (m *mockFriendServicer) Accept(ctx context.Context, id, from, to string) error {
	return m.accept(ctx, id, from, to)
}
func (m *mockFriendServicer) Decline(ctx context.Context, id string) error {
	return m.decline(ctx, id)
}

var _ handler.FriendServicer = (*mockFriendServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverWith wires a Server around whichever mocks the test provides; nil
// mocks panic on use, flagging an unexpected dependency. This mirrors how
// main.go wires the router in production.
func serverWith(users handler.UserServicer, its handler.ItineraryServicer, events handler.EventServicer, friends handler.FriendServicer) http.Handler {
	return handler.NewServer(users, its, events, friends).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeResponse[T any](t *testing.T, body *bytes.Buffer) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}
