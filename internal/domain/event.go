package domain

// Event is a single activity on an itinerary — a restaurant booking, a
// hike, a museum visit. All schedule fields are client-formatted strings
// (MM/DD/YYYY dates, free-form times); the server stores and returns them
// without interpretation. Tags are stored as an embedded JSON array cell.
type Event struct {
	ID          string
	ItineraryID string
	Title       string
	Description string
	Address     string
	Contact     string
	Hours       string
	Price       string
	Rating      string
	RatingCount string
	Tags        []string
	ImagePath   string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
}
