package calendar

import (
	"context"
	"time"
)

// Business-hours scan window and candidate stride.
const (
	businessStartHour = 9
	businessEndHour   = 18
	scanStride        = 30 * time.Minute

	// DefaultSlotDuration is the slot length used when no duration is
	// configured, matching the default meeting length.
	DefaultSlotDuration = 60 * time.Minute
)

// FindAvailableSlots scans the day's business hours (09:00-18:00) for open
// intervals of the given duration, advancing candidate start times in
// 30-minute steps. Each candidate is checked against the calendar; one probe
// failure aborts the scan.
func FindAvailableSlots(ctx context.Context, svc Service, day time.Time, duration time.Duration) ([]Slot, error) {
	if duration <= 0 {
		duration = DefaultSlotDuration
	}

	businessStart := time.Date(day.Year(), day.Month(), day.Day(), businessStartHour, 0, 0, 0, day.Location())
	businessEnd := time.Date(day.Year(), day.Month(), day.Day(), businessEndHour, 0, 0, 0, day.Location())

	slots := []Slot{}
	for start := businessStart; !start.Add(duration).After(businessEnd); start = start.Add(scanStride) {
		end := start.Add(duration)
		free, err := svc.IsFree(ctx, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots, nil
}
