package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/backend/internal/domain"
)

// credentialsRequest is the body for both POST /signup and POST /login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest is the body for PUT /users/{email}. Absent fields
// are preserved; present-but-empty strings overwrite.
type updateProfileRequest struct {
	Password      *string `json:"password,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	TravellerType *string `json:"traveller_type,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

// userResponse is the public shape of a user. The password never leaves
// the server.
type userResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name,omitempty"`
	LastName      string          `json:"last_name,omitempty"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	TravellerType string          `json:"traveller_type,omitempty"`
	Bio           string          `json:"bio,omitempty"`
	Friends       []domain.Friend `json:"friends"`
}

// Signup handles POST /signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	user, err := s.users.Signup(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// Login handles POST /login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	user, err := s.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PUT /users/{email}.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body updateProfileRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	up := domain.UserUpdate{
		Password:      body.Password,
		FirstName:     body.FirstName,
		LastName:      body.LastName,
		PhoneNumber:   body.PhoneNumber,
		TravellerType: body.TravellerType,
		Bio:           body.Bio,
	}
	user, err := s.users.UpdateProfile(r.Context(), chi.URLParam(r, "email"), up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// FindUserByPhone handles GET /users/by-phone?phone=...
// Only the matching email is returned — the lookup exists so the client
// can invite a contact, not to expose full profiles by number.
func (s *Server) FindUserByPhone(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.FindByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
}

// userToResponse strips the password from a domain.User.
func userToResponse(u domain.User) userResponse {
	friends := u.Friends
	if friends == nil {
		friends = []domain.Friend{}
	}
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNumber:   u.PhoneNumber,
		TravellerType: u.TravellerType,
		Bio:           u.Bio,
		Friends:       friends,
	}
}
