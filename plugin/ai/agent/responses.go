package agent

import (
	"fmt"
	"strings"

	"github.com/lowkeyshift/planwise/plugin/calendar"
)

// Static replies. Clarifications and fallbacks are fixed strings so behavior
// without inference stays deterministic.
const (
	msgBookingClarification = "I'd be happy to help you book a meeting! Please provide the date, time, and title of the meeting."

	msgAvailabilityClarification = "I can check availability for you. Please tell me both the date and the time you'd like to check."

	msgChatFallback = "I'm here to help with your calendar! You can ask me to book meetings, check schedules, or find available times."

	msgCalendarDown = "Sorry, I can't reach your calendar right now. Please try again in a moment."

	msgBookingFailed = "Sorry, I couldn't create that event. Please try again."

	msgApology = "Sorry, I'm having trouble right now. Please try again!"
)

func conflictMessage(datePhrase, timePhrase string) string {
	return fmt.Sprintf("Sorry, %s on %s is not available. Please choose another time.", timePhrase, datePhrase)
}

func bookedMessage(title, datePhrase, timePhrase string) string {
	return fmt.Sprintf("Successfully booked '%s' for %s at %s. The meeting has been added to your calendar.", title, datePhrase, timePhrase)
}

func availabilityMessage(datePhrase, timePhrase string, free bool) string {
	verdict := "available"
	if !free {
		verdict = "not available"
	}
	return fmt.Sprintf("%s on %s is %s.", timePhrase, datePhrase, verdict)
}

func scheduleMessage(dayName string, events []calendar.Event) string {
	if len(events) == 0 {
		return fmt.Sprintf("%s is wide open! No events scheduled.", capitalize(dayName))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what's on your schedule %s:", dayName)
	for i, event := range events {
		if i == maxListedEvents {
			break
		}
		if event.AllDay {
			fmt.Fprintf(&b, "\n- All day: %s", event.Summary)
		} else {
			fmt.Fprintf(&b, "\n- %s: %s", event.Start.Format("03:04 PM"), event.Summary)
		}
	}
	return b.String()
}

func slotsMessage(dayName string, open []calendar.Slot) string {
	if len(open) == 0 {
		return fmt.Sprintf("No available slots found for %s.", dayName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available slots for %s:", dayName)
	for i, slot := range open {
		if i == maxListedSlots {
			break
		}
		fmt.Fprintf(&b, "\n- %s", slot.Format())
	}
	return b.String()
}

func personaPrompt(utterance string) string {
	return fmt.Sprintf(`You are a helpful calendar assistant. The user said: %q

Provide a friendly, helpful response about calendar management. You can help with:
- Booking meetings
- Checking availability
- Showing schedules
- General calendar questions

Keep your response concise and helpful.`, utterance)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
