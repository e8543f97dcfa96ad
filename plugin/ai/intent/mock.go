package intent

import "context"

// MockClassifier is a Classifier for testing with per-utterance overrides.
type MockClassifier struct {
	// Overrides maps exact utterances to intents.
	Overrides map[string]Intent
	// Default is returned when no override matches.
	Default Intent
}

// NewMockClassifier creates a mock defaulting to GeneralChat.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		Overrides: make(map[string]Intent),
		Default:   IntentGeneralChat,
	}
}

// Classify implements Classifier.
func (m *MockClassifier) Classify(_ context.Context, utterance string) Result {
	if intent, ok := m.Overrides[utterance]; ok {
		return Result{Intent: intent, Source: SourceRule}
	}
	return Result{Intent: m.Default, Source: SourceDefault}
}

var _ Classifier = (*MockClassifier)(nil)
