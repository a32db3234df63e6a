package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/backend/internal/domain"
)

// createEventRequest is the body for POST /itineraries/{id}/events.
// Email identifies the requester, who must be the itinerary's owner or a
// trip-mate.
type createEventRequest struct {
	Email       string   `json:"email"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Hours       string   `json:"hours,omitempty"`
	Price       string   `json:"price,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	RatingCount string   `json:"rating_count,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ImagePath   string   `json:"image_path,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
}

// eventResponse is the public shape of an event.
type eventResponse struct {
	ID          string   `json:"event_id"`
	ItineraryID string   `json:"itinerary_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Hours       string   `json:"hours,omitempty"`
	Price       string   `json:"price,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	RatingCount string   `json:"rating_count,omitempty"`
	Tags        []string `json:"tags"`
	ImagePath   string   `json:"image_path,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
}

// CreateEvent handles POST /itineraries/{id}/events.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body createEventRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	created, err := s.events.Create(r.Context(), body.Email, domain.Event{
		ItineraryID: chi.URLParam(r, "id"),
		Title:       body.Title,
		Description: body.Description,
		Address:     body.Address,
		Contact:     body.Contact,
		Hours:       body.Hours,
		Price:       body.Price,
		Rating:      body.Rating,
		RatingCount: body.RatingCount,
		Tags:        body.Tags,
		ImagePath:   body.ImagePath,
		StartDate:   body.StartDate,
		StartTime:   body.StartTime,
		EndDate:     body.EndDate,
		EndTime:     body.EndTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventToResponse(created))
}

// ListEvents handles GET /itineraries/{id}/events?email=...
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	events, err := s.events.ListByItinerary(r.Context(), email, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]eventResponse, len(events))
	for i, ev := range events {
		out[i] = eventToResponse(ev)
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteEvent handles DELETE /itineraries/{id}/events/{eventID}?email=...
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	err := s.events.Delete(r.Context(), email, chi.URLParam(r, "id"), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventCounts handles GET /events/counts?email=...&active=true.
// Returns a map of itinerary ID to event count. With email and active set,
// only that owner's active itineraries are counted.
func (s *Server) EventCounts(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	activeOnly := r.URL.Query().Get("active") == "true"
	if activeOnly && email == "" {
		requestError(w, "email query parameter is required when active=true")
		return
	}

	counts, err := s.events.Counts(r.Context(), email, activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// eventToResponse maps a domain.Event to its public shape.
func eventToResponse(ev domain.Event) eventResponse {
	tags := ev.Tags
	if tags == nil {
		tags = []string{}
	}
	return eventResponse{
		ID:          ev.ID,
		ItineraryID: ev.ItineraryID,
		Title:       ev.Title,
		Description: ev.Description,
		Address:     ev.Address,
		Contact:     ev.Contact,
		Hours:       ev.Hours,
		Price:       ev.Price,
		Rating:      ev.Rating,
		RatingCount: ev.RatingCount,
		Tags:        tags,
		ImagePath:   ev.ImagePath,
		StartDate:   ev.StartDate,
		StartTime:   ev.StartTime,
		EndDate:     ev.EndDate,
		EndTime:     ev.EndTime,
	}
}
