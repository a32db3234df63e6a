// Package handler implements the HTTP handlers for the Wayfarer API.
// All handlers are methods on Server, split into domain-specific files
// (user.go, itinerary.go, etc.) but sharing the same struct so they can
// access its dependencies. The requester's identity travels in the request
// body or query string — there are no auth tokens in this API.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/backend/internal/domain"
)

// UserServicer defines the account operations the user handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type UserServicer interface {
	Signup(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	UpdateProfile(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error)
	FindByPhone(ctx context.Context, phone string) (domain.User, error)
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	VisibleTo(ctx context.Context, email string) ([]domain.Itinerary, error)
	ActiveFor(ctx context.Context, email string) ([]domain.Itinerary, error)
	Update(ctx context.Context, id, requester string, up domain.ItineraryUpdate) (domain.Itinerary, error)
	Delete(ctx context.Context, id, requester string) error
	Share(ctx context.Context, id, requester, friendEmail, access, friendName, ownerName string) error
	Unshare(ctx context.Context, id, requester, target string) error
}

// EventServicer defines the event operations the handlers depend on.
type EventServicer interface {
	Create(ctx context.Context, requester string, ev domain.Event) (domain.Event, error)
	ListByItinerary(ctx context.Context, requester, itineraryID string) ([]domain.Event, error)
	Counts(ctx context.Context, ownerEmail string, activeOnly bool) (map[string]int, error)
	Delete(ctx context.Context, requester, itineraryID, eventID string) error
}

// FriendServicer defines the friendship operations the handlers depend on.
type FriendServicer interface {
	Friends(ctx context.Context, email string) ([]domain.FriendProfile, error)
	AddFriend(ctx context.Context, userEmail, friendEmail string) error
	RemoveFriend(ctx context.Context, userEmail, friendEmail string) error
	SetFavorite(ctx context.Context, userEmail, friendEmail string, favorite bool) error
	SendRequest(ctx context.Context, from, to string) (domain.FriendRequest, error)
	ListIncoming(ctx context.Context, email string) ([]domain.FriendRequest, error)
	Accept(ctx context.Context, id, from, to string) error
	Decline(ctx context.Context, id string) error
}

// Server holds the service dependencies for every API endpoint.
// Methods live in domain-specific files but all operate on this struct.
type Server struct {
	users       UserServicer
	itineraries ItineraryServicer
	events      EventServicer
	friends     FriendServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, itineraries ItineraryServicer, events EventServicer, friends FriendServicer) *Server {
	return &Server{users: users, itineraries: itineraries, events: events, friends: friends}
}

// Routes returns the chi router with every API route registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Post("/signup", s.Signup)
	r.Post("/login", s.Login)
	r.Put("/users/{email}", s.UpdateProfile)
	r.Get("/users/by-phone", s.FindUserByPhone)

	r.Get("/itineraries", s.ListItineraries)
	r.Get("/itineraries/active", s.ListActiveItineraries)
	r.Post("/itineraries", s.CreateItinerary)
	r.Put("/itineraries/{id}", s.UpdateItinerary)
	r.Delete("/itineraries/{id}", s.DeleteItinerary)
	r.Post("/itineraries/{id}/share", s.ShareItinerary)
	r.Post("/itineraries/{id}/unshare", s.UnshareItinerary)

	r.Post("/itineraries/{id}/events", s.CreateEvent)
	r.Get("/itineraries/{id}/events", s.ListEvents)
	r.Delete("/itineraries/{id}/events/{eventID}", s.DeleteEvent)
	r.Get("/events/counts", s.EventCounts)

	r.Get("/friends", s.ListFriends)
	r.Post("/friends", s.AddFriend)
	r.Post("/friends/remove", s.RemoveFriend)
	r.Post("/friends/favorite", s.FavoriteFriend)
	r.Post("/friend-requests", s.SendFriendRequest)
	r.Get("/friend-requests", s.ListFriendRequests)
	r.Post("/friend-requests/{id}/accept", s.AcceptFriendRequest)
	r.Post("/friend-requests/{id}/decline", s.DeclineFriendRequest)

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
