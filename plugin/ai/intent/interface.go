// Package intent classifies user utterances into a closed set of intents.
package intent

import "context"

// Classifier is the intent classification interface.
type Classifier interface {
	// Classify maps an utterance to exactly one intent. It always returns a
	// value and never fails; unclassifiable input is GeneralChat.
	Classify(ctx context.Context, utterance string) Result
}

// Intent represents the classified purpose of a user utterance.
type Intent string

const (
	IntentBookMeeting        Intent = "book_meeting"
	IntentCheckSchedule      Intent = "check_schedule"
	IntentCheckAvailability  Intent = "check_availability"
	IntentFindAvailableSlots Intent = "find_slots"
	IntentGeneralChat        Intent = "general_chat"
)

// Source identifies which tier produced a classification.
type Source string

const (
	SourceRule      Source = "rule"
	SourceInference Source = "inference"
	SourceDefault   Source = "default"
)

// Result is a classification outcome.
type Result struct {
	Intent Intent
	Source Source
}
