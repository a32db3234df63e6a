// Package domain contains the core data types for the Wayfarer backend.
// This package has zero external dependencies and is imported by every other
// internal package (store, repo, service, handler).
package domain

// Friend is one entry in a user's friend list, stored as an embedded
// JSON array inside a single cell of the users table.
type Friend struct {
	Email    string `json:"email"`
	Favorite bool   `json:"favorite"`
}

// User is an account holder. Email is the functional primary key — every
// lookup and foreign-key reference uses it, not ID. ID exists only so the
// client has a stable opaque handle from signup time.
//
// Password is stored and compared as plaintext. Hardening it is explicitly
// out of scope for this service.
type User struct {
	ID            string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	PhoneNumber   string
	TravellerType string
	Bio           string
	Friends       []Friend
}

// UserUpdate names exactly the profile fields a client may change.
// Nil pointers mean "leave the current value alone". Email and ID are
// deliberately absent — the email is the key and is never rewritten.
type UserUpdate struct {
	Password      *string
	FirstName     *string
	LastName      *string
	PhoneNumber   *string
	TravellerType *string
	Bio           *string
}

// Apply merges the update over u, preserving every field the update
// does not name.
func (up UserUpdate) Apply(u User) User {
	if up.Password != nil {
		u.Password = *up.Password
	}
	if up.FirstName != nil {
		u.FirstName = *up.FirstName
	}
	if up.LastName != nil {
		u.LastName = *up.LastName
	}
	if up.PhoneNumber != nil {
		u.PhoneNumber = *up.PhoneNumber
	}
	if up.TravellerType != nil {
		u.TravellerType = *up.TravellerType
	}
	if up.Bio != nil {
		u.Bio = *up.Bio
	}
	return u
}

// FriendProfile is a friend's full profile annotated with the favorite flag
// from the owning user's friend list. Returned by the friends listing.
type FriendProfile struct {
	User
	Favorite bool
}
