package domain

// Itinerary sharing access levels. Viewer is read-only; a trip-mate may
// also add and delete events on the itinerary. Only the owner may change
// the itinerary record itself or its sharing list.
const (
	AccessViewer   = "viewer"
	AccessTripMate = "trip-mate"
)

// ValidAccess reports whether s is a recognised sharing access level.
func ValidAccess(s string) bool {
	return s == AccessViewer || s == AccessTripMate
}

// SharedUser is one entry in an itinerary's sharing list, stored as an
// embedded JSON array inside a single cell of the itineraries table.
// FriendName and OwnerName are display names captured at share time so the
// client can render the sharing screen without extra lookups.
type SharedUser struct {
	Email      string `json:"email"`
	Access     string `json:"access"`
	FriendName string `json:"friend_name"`
	OwnerName  string `json:"owner_name"`
}

// Itinerary is a planned trip. OwnerEmail references the owning User by
// email; SharedWith grants other users visibility per the access levels
// above. StartDate and EndDate are MM/DD/YYYY strings — the client's wire
// format — parsed only where a calendar comparison is needed.
type Itinerary struct {
	ID           string
	OwnerEmail   string
	Title        string
	Description  string
	StartDate    string
	EndDate      string
	Destinations string
	SharedWith   []SharedUser
}

// VisibleTo reports whether email may see this itinerary: the owner always
// can, and so can anyone on the sharing list regardless of access level.
// This is the sole authorization rule in the system and is re-checked on
// every read and mutation, not just at the list endpoint.
func (it Itinerary) VisibleTo(email string) bool {
	if it.OwnerEmail == email {
		return true
	}
	for _, su := range it.SharedWith {
		if su.Email == email {
			return true
		}
	}
	return false
}

// CanEditEvents reports whether email may add or delete events on this
// itinerary: the owner and trip-mates, but not viewers.
func (it Itinerary) CanEditEvents(email string) bool {
	if it.OwnerEmail == email {
		return true
	}
	for _, su := range it.SharedWith {
		if su.Email == email && su.Access == AccessTripMate {
			return true
		}
	}
	return false
}

// ItineraryUpdate names exactly the fields a partial itinerary update may
// change. Nil pointers mean "preserve". The owner and sharing list are
// updated through dedicated share/unshare operations, never here.
type ItineraryUpdate struct {
	Title        *string
	Description  *string
	StartDate    *string
	EndDate      *string
	Destinations *string
}

// Apply merges the update over it, preserving unnamed fields.
func (up ItineraryUpdate) Apply(it Itinerary) Itinerary {
	if up.Title != nil {
		it.Title = *up.Title
	}
	if up.Description != nil {
		it.Description = *up.Description
	}
	if up.StartDate != nil {
		it.StartDate = *up.StartDate
	}
	if up.EndDate != nil {
		it.EndDate = *up.EndDate
	}
	if up.Destinations != nil {
		it.Destinations = *up.Destinations
	}
	return it
}
