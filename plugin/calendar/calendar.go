// Package calendar defines the calendar capability: availability checks,
// event creation, and day listings. The engine treats the calendar as an
// external collaborator accessed through a narrow interface, so tests run
// against an in-memory implementation and production against Google Calendar.
package calendar

import (
	"context"
	"fmt"
	"time"
)

// Event is a calendar entry as the engine sees it. AllDay entries carry a
// zero Start/End clock time.
type Event struct {
	ID      string    `json:"id,omitempty"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AllDay  bool      `json:"allDay,omitempty"`
}

// Slot is one open interval found by an availability scan.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Format renders the slot as a human-friendly 12-hour range.
func (s Slot) Format() string {
	return fmt.Sprintf("%s - %s", s.Start.Format("03:04 PM"), s.End.Format("03:04 PM"))
}

// Service is the calendar capability contract. Every method makes a single
// attempt; failures surface as CALENDAR_UNAVAILABLE and are never retried,
// because retrying a non-idempotent create risks duplicate events.
type Service interface {
	// IsFree reports whether no event overlaps [start, end).
	IsFree(ctx context.Context, start, end time.Time) (bool, error)

	// Create adds an event and returns it with the provider-assigned ID.
	Create(ctx context.Context, summary string, start, end time.Time) (*Event, error)

	// ListForDay returns the day's events ordered by start time.
	ListForDay(ctx context.Context, day time.Time) ([]Event, error)
}
