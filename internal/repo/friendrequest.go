package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/store"
)

// friendRequestHeader fixes the column order of the friend_requests table.
var friendRequestHeader = []string{"id", "from_email", "to_email"}

// FriendRequestRepo defines the persistence operations for pending friend
// requests. Accepted and declined requests have no rows — terminal states
// are represented by deletion.
type FriendRequestRepo interface {
	// Init creates the backing file if absent. Idempotent.
	Init() error

	// Create persists a new pending request with a freshly assigned ID.
	// Returns domain.ErrConflict if an identical pending request
	// (same from and to) already exists.
	Create(ctx context.Context, from, to string) (domain.FriendRequest, error)

	// GetByID retrieves a single pending request.
	// Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (domain.FriendRequest, error)

	// ListTo returns all pending requests addressed to the given email.
	ListTo(ctx context.Context, email string) ([]domain.FriendRequest, error)

	// Delete removes a pending request by ID.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// csvFriendRequestRepo is the flat-file implementation of FriendRequestRepo.
type csvFriendRequestRepo struct {
	table *store.Table[domain.FriendRequest]
}

// NewFriendRequestRepo constructs a FriendRequestRepo over
// friend_requests.csv in dataDir.
func NewFriendRequestRepo(dataDir string) FriendRequestRepo {
	return &csvFriendRequestRepo{
		table: store.NewTable(
			filepath.Join(dataDir, "friend_requests.csv"),
			friendRequestHeader, encodeFriendRequest, decodeFriendRequest,
		),
	}
}

func (r *csvFriendRequestRepo) Init() error {
	return r.table.Init()
}

func (r *csvFriendRequestRepo) Create(ctx context.Context, from, to string) (domain.FriendRequest, error) {
	req := domain.FriendRequest{ID: uuid.NewString(), FromEmail: from, ToEmail: to}
	err := r.table.Insert(ctx, req, func(existing domain.FriendRequest) bool {
		return existing.FromEmail == from && existing.ToEmail == to
	})
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.Create: %w", err)
	}
	return req, nil
}

func (r *csvFriendRequestRepo) GetByID(ctx context.Context, id string) (domain.FriendRequest, error) {
	reqs, err := r.table.ReadAll(ctx)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.GetByID: %w", err)
	}
	for _, req := range reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *csvFriendRequestRepo) ListTo(ctx context.Context, email string) ([]domain.FriendRequest, error) {
	all, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.FriendRequestRepo.ListTo: %w", err)
	}
	reqs := []domain.FriendRequest{}
	for _, req := range all {
		if req.ToEmail == email {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (r *csvFriendRequestRepo) Delete(ctx context.Context, id string) error {
	_, err := r.table.DeleteWhere(ctx, func(req domain.FriendRequest) bool { return req.ID == id })
	if err != nil {
		return fmt.Errorf("repo.FriendRequestRepo.Delete: %w", err)
	}
	return nil
}

// encodeFriendRequest maps a domain.FriendRequest to CSV fields in
// friendRequestHeader order.
func encodeFriendRequest(req domain.FriendRequest) []string {
	return []string{req.ID, req.FromEmail, req.ToEmail}
}

// decodeFriendRequest maps CSV fields back to a domain.FriendRequest.
func decodeFriendRequest(f []string) (domain.FriendRequest, error) {
	return domain.FriendRequest{ID: f[0], FromEmail: f[1], ToEmail: f[2]}, nil
}
