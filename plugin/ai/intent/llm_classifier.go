package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/lowkeyshift/planwise/plugin/ai"
)

// LLMClassifier is the inference tier. It is consulted only when the rule
// tier produced no match, so keyword evidence always wins.
type LLMClassifier struct {
	llm ai.LLMService
}

// NewLLMClassifier creates an inference-backed classifier. A nil service is
// allowed and simply never matches.
func NewLLMClassifier(llm ai.LLMService) *LLMClassifier {
	return &LLMClassifier{llm: llm}
}

// classificationPrompt enumerates the intents with examples and asks for a
// single category word back.
const classificationPrompt = `What is the user's intent in this message: %q

Choose exactly one of:
- book_meeting: the user wants to book or schedule a NEW meeting (e.g. "book a meeting", "schedule a call")
- check_availability: the user wants to know whether a specific time is open (e.g. "is 3pm free", "check availability")
- check_schedule: the user wants to see EXISTING events (e.g. "what's my schedule", "show my events")
- find_slots: the user wants a list of open time slots (e.g. "what slots are open tomorrow")
- general_chat: anything else

Return only the intent word, nothing else.`

// Classify asks the inference service for a category. Any failure, and any
// response that maps to no known category, yields (GeneralChat, false).
func (c *LLMClassifier) Classify(ctx context.Context, utterance string) (Intent, bool) {
	if c.llm == nil {
		return IntentGeneralChat, false
	}

	response, err := c.llm.Complete(ctx, fmt.Sprintf(classificationPrompt, utterance))
	if err != nil {
		return IntentGeneralChat, false
	}

	return mapCategory(response)
}

// mapCategory maps free-text inference output onto the closed intent set.
func mapCategory(response string) (Intent, bool) {
	word := strings.ToLower(strings.TrimSpace(response))
	// Tolerate answers like "intent: book_meeting" or trailing punctuation.
	if idx := strings.LastIndex(word, ":"); idx >= 0 {
		word = strings.TrimSpace(word[idx+1:])
	}
	word = strings.Trim(word, `."'`)

	switch Intent(word) {
	case IntentBookMeeting, IntentCheckSchedule, IntentCheckAvailability, IntentFindAvailableSlots, IntentGeneralChat:
		return Intent(word), true
	}
	return IntentGeneralChat, false
}
