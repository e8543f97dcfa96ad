package intent

import (
	"strings"
)

// RuleMatcher implements the deterministic keyword tier. Its verdicts always
// take precedence over the inference tier.
//
// The check order matters: schedule-query phrases run before booking phrases
// because "schedule" appears in both "book a ... schedule" and "what's my
// schedule", and the query form is the more specific match. Slot-scan phrases
// run before plain availability phrases for the same reason.
type RuleMatcher struct {
	schedulePhrases     []string
	bookingPhrases      []string
	slotScanPhrases     []string
	availabilityPhrases []string
}

// NewRuleMatcher creates a rule matcher with the predefined phrase lists.
func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{
		schedulePhrases: []string{
			"what's my schedule", "whats my schedule", "show my schedule",
			"my schedule", "show my events", "my events", "what do i have",
		},
		bookingPhrases: []string{
			"book", "schedule a", "set up", "create meeting", "add meeting",
		},
		slotScanPhrases: []string{
			"available slots", "free slots", "open slots", "find a slot", "find slots",
		},
		availabilityPhrases: []string{
			"available", "free", "check if",
		},
	}
}

// Match attempts to classify the utterance with keyword rules.
// Returns the intent and whether any rule matched.
func (m *RuleMatcher) Match(utterance string) (Intent, bool) {
	lower := strings.ToLower(utterance)

	if containsAny(lower, m.schedulePhrases) {
		return IntentCheckSchedule, true
	}
	if containsAny(lower, m.bookingPhrases) {
		return IntentBookMeeting, true
	}
	if containsAny(lower, m.slotScanPhrases) {
		return IntentFindAvailableSlots, true
	}
	if containsAny(lower, m.availabilityPhrases) {
		return IntentCheckAvailability, true
	}

	return IntentGeneralChat, false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
