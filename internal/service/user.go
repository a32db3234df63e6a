// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce the visibility and access rules, and
// orchestrate repo calls. No file access lives here — services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wayfarer-app/backend/internal/domain"
	"github.com/wayfarer-app/backend/internal/repo"
)

// UserService implements account operations: signup, login, profile edits,
// and the phone-number lookup.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Signup creates a new account with an empty profile.
// Returns domain.ErrValidation if email or password is blank, and
// domain.ErrConflict if the email is already registered.
func (s *UserService) Signup(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	user, err := s.users.Create(ctx, domain.User{Email: email, Password: password})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Signup: %w", err)
	}
	return user, nil
}

// Login checks the email/password pair and returns the matching user.
// Both an unknown email and a wrong password return domain.ErrNotFound, so
// the response does not reveal which half was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Login: %w", err)
	}
	if user.Password != password {
		return domain.User{}, fmt.Errorf("service.UserService.Login: %w", domain.ErrNotFound)
	}
	return user, nil
}

// UpdateProfile merges the partial update over the user's record.
// Fields the update does not name are preserved.
func (s *UserService) UpdateProfile(ctx context.Context, email string, up domain.UserUpdate) (domain.User, error) {
	if up.Password != nil && *up.Password == "" {
		return domain.User{}, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	user, err := s.users.Update(ctx, email, up)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return user, nil
}

// FindByPhone returns the user with exactly the given phone number,
// after trimming surrounding whitespace from the query.
func (s *UserService) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.User{}, fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.FindByPhone: %w", err)
	}
	return user, nil
}
