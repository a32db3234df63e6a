package service

import "time"

// SetClock overrides the service clock so tests can pin the
// active/past boundary.
func (s *ItineraryService) SetClock(now func() time.Time) { s.now = now }

// SetClock overrides the service clock so tests can pin the
// active/past boundary.
func (s *EventService) SetClock(now func() time.Time) { s.now = now }
