package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/backend/internal/domain"
)

// createItineraryRequest is the body for POST /itineraries.
type createItineraryRequest struct {
	OwnerEmail   string `json:"owner_email"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Destinations string `json:"destinations,omitempty"`
}

// updateItineraryRequest is the body for PUT /itineraries/{id}.
// Email identifies the requester; the rest are optional partial fields.
type updateItineraryRequest struct {
	Email        string  `json:"email"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Destinations *string `json:"destinations,omitempty"`
}

// shareRequest is the body for POST /itineraries/{id}/share.
type shareRequest struct {
	Email       string `json:"email"`        // requester (must be the owner)
	FriendEmail string `json:"friend_email"` // who gains access
	Access      string `json:"access"`       // "viewer" or "trip-mate"
	FriendName  string `json:"friend_name,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
}

// unshareRequest is the body for POST /itineraries/{id}/unshare.
// Owner revocation and a shared user removing themselves both land here.
type unshareRequest struct {
	Email       string `json:"email"`        // requester
	FriendEmail string `json:"friend_email"` // who loses access
}

// itineraryResponse is the public shape of an itinerary.
type itineraryResponse struct {
	ID           string              `json:"itinerary_id"`
	OwnerEmail   string              `json:"user_email"`
	Title        string              `json:"trip_title"`
	Description  string              `json:"trip_description,omitempty"`
	StartDate    string              `json:"start_date,omitempty"`
	EndDate      string              `json:"end_date,omitempty"`
	Destinations string              `json:"destinations,omitempty"`
	SharedWith   []domain.SharedUser `json:"shared_with"`
}

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body createItineraryRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	created, err := s.itineraries.Create(r.Context(), domain.Itinerary{
		OwnerEmail:   body.OwnerEmail,
		Title:        body.Title,
		Description:  body.Description,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Destinations: body.Destinations,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// ListItineraries handles GET /itineraries?email=...
// Returns every itinerary the user owns or that is shared with them.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	its, err := s.itineraries.VisibleTo(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itinerariesToResponse(its))
}

// ListActiveItineraries handles GET /itineraries/active?email=...
// Returns the user's own itineraries that have not yet ended.
func (s *Server) ListActiveItineraries(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	its, err := s.itineraries.ActiveFor(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itinerariesToResponse(its))
}

// UpdateItinerary handles PUT /itineraries/{id}.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	var body updateItineraryRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	up := domain.ItineraryUpdate{
		Title:        body.Title,
		Description:  body.Description,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Destinations: body.Destinations,
	}
	updated, err := s.itineraries.Update(r.Context(), chi.URLParam(r, "id"), body.Email, up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// DeleteItinerary handles DELETE /itineraries/{id}?email=...
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	if err := s.itineraries.Delete(r.Context(), chi.URLParam(r, "id"), email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShareItinerary handles POST /itineraries/{id}/share.
func (s *Server) ShareItinerary(w http.ResponseWriter, r *http.Request) {
	var body shareRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	err := s.itineraries.Share(r.Context(), chi.URLParam(r, "id"),
		body.Email, body.FriendEmail, body.Access, body.FriendName, body.OwnerName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shared"})
}

// UnshareItinerary handles POST /itineraries/{id}/unshare.
func (s *Server) UnshareItinerary(w http.ResponseWriter, r *http.Request) {
	var body unshareRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	err := s.itineraries.Unshare(r.Context(), chi.URLParam(r, "id"), body.Email, body.FriendEmail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unshared"})
}

// itineraryToResponse maps a domain.Itinerary to its public shape.
func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	shared := it.SharedWith
	if shared == nil {
		shared = []domain.SharedUser{}
	}
	return itineraryResponse{
		ID:           it.ID,
		OwnerEmail:   it.OwnerEmail,
		Title:        it.Title,
		Description:  it.Description,
		StartDate:    it.StartDate,
		EndDate:      it.EndDate,
		Destinations: it.Destinations,
		SharedWith:   shared,
	}
}

func itinerariesToResponse(its []domain.Itinerary) []itineraryResponse {
	out := make([]itineraryResponse, len(its))
	for i, it := range its {
		out[i] = itineraryToResponse(it)
	}
	return out
}
