package service

import (
	"context"
	"fmt"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
)

// FriendService implements the friendship graph and the friend-request
// protocol. Friendships are stored as embedded lists on each User record;
// a request is a row in its own table that exists only while pending.
//
// AddFriend is deliberately one-directional: accepting a request calls it
// once per direction, and each call is idempotent, so the whole accept
// sequence can be retried forward after a partial failure. The request row
// is deleted last — a crash mid-accept leaves the request pending and
// retryable, never silently lost.
type FriendService struct {
	users    repo.UserRepo
	requests repo.FriendRequestRepo
}

// NewFriendService constructs a FriendService backed by the provided repos.
func NewFriendService(users repo.UserRepo, requests repo.FriendRequestRepo) *FriendService {
	return &FriendService{users: users, requests: requests}
}

// Friends returns the full profiles of the user's friends, each annotated
// with the favorite flag from the friend list. Entries whose email no
// longer resolves to a live user are silently dropped.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FriendService) Friends(ctx context.Context, email string) ([]domain.FriendProfile, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.FriendService.Friends: %w", err)
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FriendService.Friends: %w", err)
	}

	byEmail := make(map[string]domain.User, len(all))
	for _, u := range all {
		byEmail[u.Email] = u
	}

	profiles := []domain.FriendProfile{}
	for _, f := range user.Friends {
		u, ok := byEmail[f.Email]
		if !ok {
			continue // dangling reference, tolerated
		}
		profiles = append(profiles, domain.FriendProfile{User: u, Favorite: f.Favorite})
	}
	return profiles, nil
}

// AddFriend appends friendEmail to userEmail's friend list. Idempotent —
// adding an existing friend is a no-op. Note this is one-directional;
// callers wanting a mutual friendship call it once per direction.
func (s *FriendService) AddFriend(ctx context.Context, userEmail, friendEmail string) error {
	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("service.FriendService.AddFriend: %w", err)
	}
	for _, f := range user.Friends {
		if f.Email == friendEmail {
			return nil
		}
	}

	friends := append(user.Friends, domain.Friend{Email: friendEmail, Favorite: false})
	if err := s.users.UpdateFriends(ctx, userEmail, friends); err != nil {
		return fmt.Errorf("service.FriendService.AddFriend: %w", err)
	}
	return nil
}

// RemoveFriend drops friendEmail from userEmail's friend list.
// Removing an absent friend is a no-op, not an error.
func (s *FriendService) RemoveFriend(ctx context.Context, userEmail, friendEmail string) error {
	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("service.FriendService.RemoveFriend: %w", err)
	}

	friends := []domain.Friend{}
	removed := false
	for _, f := range user.Friends {
		if f.Email == friendEmail {
			removed = true
			continue
		}
		friends = append(friends, f)
	}
	if !removed {
		return nil
	}

	if err := s.users.UpdateFriends(ctx, userEmail, friends); err != nil {
		return fmt.Errorf("service.FriendService.RemoveFriend: %w", err)
	}
	return nil
}

// SetFavorite sets the favorite flag on the matching friend-list entry.
// A no-op if friendEmail is not on the list.
func (s *FriendService) SetFavorite(ctx context.Context, userEmail, friendEmail string, favorite bool) error {
	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("service.FriendService.SetFavorite: %w", err)
	}

	changed := false
	for i, f := range user.Friends {
		if f.Email == friendEmail && f.Favorite != favorite {
			user.Friends[i].Favorite = favorite
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.users.UpdateFriends(ctx, userEmail, user.Friends); err != nil {
		return fmt.Errorf("service.FriendService.SetFavorite: %w", err)
	}
	return nil
}

// SendRequest creates a pending friend request from one user to another.
// Returns domain.ErrValidation for a self-request, domain.ErrNotFound if
// either party does not exist, and domain.ErrConflict if the pair is
// already friends or an identical request is already pending.
func (s *FriendService) SendRequest(ctx context.Context, from, to string) (domain.FriendRequest, error) {
	if from == to {
		return domain.FriendRequest{}, fmt.Errorf("%w: cannot send a friend request to yourself", domain.ErrValidation)
	}
	sender, err := s.users.GetByEmail(ctx, from)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: sender: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, to); err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: recipient: %w", err)
	}
	for _, f := range sender.Friends {
		if f.Email == to {
			return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: already friends: %w", domain.ErrConflict)
		}
	}

	req, err := s.requests.Create(ctx, from, to)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: %w", err)
	}
	return req, nil
}

// ListIncoming returns the pending requests addressed to the given email.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FriendService) ListIncoming(ctx context.Context, email string) ([]domain.FriendRequest, error) {
	reqs, err := s.requests.ListTo(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.FriendService.ListIncoming: %w", err)
	}
	return reqs, nil
}

// Accept resolves a pending request into a mutual friendship.
// The from/to pair must match the stored request, guarding against a stale
// or mismatched client. Both friendship directions are created before the
// request row is deleted, so every step is a safe no-op on retry.
func (s *FriendService) Accept(ctx context.Context, id, from, to string) error {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.FriendService.Accept: %w", err)
	}
	if req.FromEmail != from || req.ToEmail != to {
		return fmt.Errorf("service.FriendService.Accept: %w", domain.ErrNotFound)
	}

	if err := s.AddFriend(ctx, to, from); err != nil {
		return fmt.Errorf("service.FriendService.Accept: %w", err)
	}
	if err := s.AddFriend(ctx, from, to); err != nil {
		return fmt.Errorf("service.FriendService.Accept: %w", err)
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FriendService.Accept: %w", err)
	}
	return nil
}

// Decline deletes a pending request without creating any friendship.
func (s *FriendService) Decline(ctx context.Context, id string) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FriendService.Decline: %w", err)
	}
	return nil
}
