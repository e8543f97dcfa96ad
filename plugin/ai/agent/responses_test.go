package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowkeyshift/planwise/plugin/calendar"
)

func TestScheduleMessage(t *testing.T) {
	start := time.Date(2026, 1, 27, 9, 0, 0, 0, time.UTC)

	t.Run("AllDayEntry", func(t *testing.T) {
		events := []calendar.Event{
			{Summary: "Company holiday", Start: start, AllDay: true},
			{Summary: "Standup", Start: start, End: start.Add(30 * time.Minute)},
		}
		got := scheduleMessage("today", events)
		assert.Contains(t, got, "- All day: Company holiday")
		assert.Contains(t, got, "- 09:00 AM: Standup")
	})

	t.Run("CapsListedEvents", func(t *testing.T) {
		events := make([]calendar.Event, maxListedEvents+3)
		for i := range events {
			events[i] = calendar.Event{Summary: "Busy", Start: start.Add(time.Duration(i) * time.Hour)}
		}
		got := scheduleMessage("today", events)
		assert.Equal(t, maxListedEvents, countLines(got)-1)
	})
}

func TestConflictAndBookedMessages(t *testing.T) {
	assert.Equal(t,
		"Sorry, 3pm on tomorrow is not available. Please choose another time.",
		conflictMessage("tomorrow", "3pm"))
	assert.Equal(t,
		"Successfully booked 'Lunch' for next friday at 12:30. The meeting has been added to your calendar.",
		bookedMessage("Lunch", "next friday", "12:30"))
}

func countLines(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
