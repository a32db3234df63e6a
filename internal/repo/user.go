// Package repo contains all persistence logic for the Wayfarer API.
// Each entity has its own file with an interface and a flat-file
// implementation over store.Table. No business logic lives here — only
// field-order mapping between domain types and CSV records.
package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/store"
)

// userHeader fixes the column order of the users table. The friends column
// holds an embedded JSON array of {email, favorite} objects.
var userHeader = []string{
	"id", "email", "password", "first_name", "last_name",
	"phone_number", "traveller_type", "bio", "friends",
}

// UserRepo defines the persistence operations for Users.
// The service layer depends on this interface, not the flat-file
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Init creates the backing file if absent. Idempotent.
	Init() error

	// Create persists a new user with a freshly assigned ID.
	// Returns domain.ErrConflict if a user with the same email exists.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByEmail retrieves a single user by email, the functional primary key.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByPhone retrieves a single user by exact phone number match.
	// Returns domain.ErrNotFound if no user with that number exists.
	GetByPhone(ctx context.Context, phone string) (domain.User, error)

	// List returns every user. The friends join and phone scan build on this.
	List(ctx context.Context) ([]domain.User, error)

	// Update merges the partial update over the user with the given email
	// and returns the updated record. Fields the update does not name are
	// preserved. Returns domain.ErrNotFound if the email is unknown.
	Update(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error)

	// UpdateFriends replaces the embedded friend list of the given user.
	// Returns domain.ErrNotFound if the email is unknown.
	UpdateFriends(ctx context.Context, email string, friends []domain.Friend) error
}

// csvUserRepo is the flat-file implementation of UserRepo.
type csvUserRepo struct {
	table *store.Table[domain.User]
}

// NewUserRepo constructs a UserRepo over users.csv in dataDir.
func NewUserRepo(dataDir string) UserRepo {
	return &csvUserRepo{
		table: store.NewTable(
			filepath.Join(dataDir, "users.csv"),
			userHeader, encodeUser, decodeUser,
		),
	}
}

func (r *csvUserRepo) Init() error {
	return r.table.Init()
}

func (r *csvUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.ID = uuid.NewString()
	if user.Friends == nil {
		user.Friends = []domain.Friend{}
	}
	err := r.table.Insert(ctx, user, func(existing domain.User) bool {
		return existing.Email == user.Email
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return user, nil
}

func (r *csvUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	users, err := r.table.ReadAll(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", domain.ErrNotFound)
}

func (r *csvUserRepo) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	users, err := r.table.ReadAll(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByPhone: %w", err)
	}
	for _, u := range users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.UserRepo.GetByPhone: %w", domain.ErrNotFound)
}

func (r *csvUserRepo) List(ctx context.Context) ([]domain.User, error) {
	users, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	return users, nil
}

func (r *csvUserRepo) Update(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error) {
	var updated domain.User
	_, err := r.table.UpdateWhere(ctx,
		func(u domain.User) bool { return u.Email == email },
		func(u domain.User) domain.User {
			updated = up.Apply(u)
			return updated
		},
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *csvUserRepo) UpdateFriends(ctx context.Context, email string, friends []domain.Friend) error {
	if friends == nil {
		friends = []domain.Friend{}
	}
	_, err := r.table.UpdateWhere(ctx,
		func(u domain.User) bool { return u.Email == email },
		func(u domain.User) domain.User {
			u.Friends = friends
			return u
		},
	)
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdateFriends: %w", err)
	}
	return nil
}

// encodeUser maps a domain.User to CSV fields in userHeader order.
func encodeUser(u domain.User) []string {
	return []string{
		u.ID, u.Email, u.Password, u.FirstName, u.LastName,
		u.PhoneNumber, u.TravellerType, u.Bio,
		store.EncodeJSONCell(u.Friends),
	}
}

// decodeUser maps CSV fields in userHeader order back to a domain.User.
// A corrupt friends cell decodes as an empty list rather than failing the row.
func decodeUser(f []string) (domain.User, error) {
	return domain.User{
		ID:            f[0],
		Email:         f[1],
		Password:      f[2],
		FirstName:     f[3],
		LastName:      f[4],
		PhoneNumber:   f[5],
		TravellerType: f[6],
		Bio:           f[7],
		Friends:       store.DecodeJSONCell[domain.Friend]("users", "friends", f[8]),
	}, nil
}
