package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// friendPairRequest is the body for POST /friends and POST /friends/remove.
type friendPairRequest struct {
	Email       string `json:"email"`
	FriendEmail string `json:"friend_email"`
}

// favoriteRequest is the body for POST /friends/favorite.
type favoriteRequest struct {
	Email       string `json:"email"`
	FriendEmail string `json:"friend_email"`
	Favorite    bool   `json:"favorite"`
}

// sendRequestRequest is the body for POST /friend-requests.
type sendRequestRequest struct {
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
}

// acceptRequestRequest is the body for POST /friend-requests/{id}/accept.
// The pair is echoed back so a stale client cannot accept a request that
// has since been replaced.
type acceptRequestRequest struct {
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
}

// friendProfileResponse is a friend's public profile plus the favorite flag.
type friendProfileResponse struct {
	userResponse
	Favorite bool `json:"favorite"`
}

// friendRequestResponse is the public shape of a pending friend request.
type friendRequestResponse struct {
	ID        string `json:"id"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
}

// ListFriends handles GET /friends?email=...
func (s *Server) ListFriends(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	profiles, err := s.friends.Friends(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]friendProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = friendProfileResponse{userResponse: userToResponse(p.User), Favorite: p.Favorite}
	}
	writeJSON(w, http.StatusOK, out)
}

// AddFriend handles POST /friends. One-directional and idempotent.
func (s *Server) AddFriend(w http.ResponseWriter, r *http.Request) {
	var body friendPairRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	if err := s.friends.AddFriend(r.Context(), body.Email, body.FriendEmail); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFriend handles POST /friends/remove.
func (s *Server) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	var body friendPairRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	if err := s.friends.RemoveFriend(r.Context(), body.Email, body.FriendEmail); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// FavoriteFriend handles POST /friends/favorite.
func (s *Server) FavoriteFriend(w http.ResponseWriter, r *http.Request) {
	var body favoriteRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	if err := s.friends.SetFavorite(r.Context(), body.Email, body.FriendEmail, body.Favorite); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// SendFriendRequest handles POST /friend-requests.
func (s *Server) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var body sendRequestRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	req, err := s.friends.SendRequest(r.Context(), body.FromEmail, body.ToEmail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, friendRequestResponse(req))
}

// ListFriendRequests handles GET /friend-requests?email=...
// Lists the pending requests addressed to the given user.
func (s *Server) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		requestError(w, "email query parameter is required")
		return
	}

	reqs, err := s.friends.ListIncoming(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]friendRequestResponse, len(reqs))
	for i, req := range reqs {
		out[i] = friendRequestResponse(req)
	}
	writeJSON(w, http.StatusOK, out)
}

// AcceptFriendRequest handles POST /friend-requests/{id}/accept.
func (s *Server) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	var body acceptRequestRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, "request body is required")
		return
	}

	err := s.friends.Accept(r.Context(), chi.URLParam(r, "id"), body.FromEmail, body.ToEmail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// DeclineFriendRequest handles POST /friend-requests/{id}/decline.
func (s *Server) DeclineFriendRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.friends.Decline(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}
