package domain

import (
	"fmt"
	"time"
)

// tripDateLayout is the client's date wire format (e.g. "06/15/2025").
const tripDateLayout = "01/02/2006"

// ParseTripDate parses an MM/DD/YYYY string into a calendar day.
// Returns ErrValidation (wrapped) for anything that does not parse.
func ParseTripDate(s string) (time.Time, error) {
	t, err := time.Parse(tripDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not MM/DD/YYYY", ErrValidation, s)
	}
	return t, nil
}

// FormatTripDate renders t in the client's MM/DD/YYYY wire format.
func FormatTripDate(t time.Time) string {
	return t.Format(tripDateLayout)
}

// Active reports whether an itinerary with the given end date counts as
// active on day now: the end date is today or later, or there is no end
// date at all. A malformed end date counts as active rather than hiding
// the itinerary from its owner.
func Active(endDate string, now time.Time) bool {
	if endDate == "" {
		return true
	}
	end, err := ParseTripDate(endDate)
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !end.Before(today)
}
