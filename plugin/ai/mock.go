package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/lowkeyshift/planwise/internal/errors"
)

// MockLLMService is a scripted LLMService for testing.
type MockLLMService struct {
	mu sync.Mutex

	// Responses maps a substring of the prompt to a canned completion.
	// The first matching entry in insertion order wins.
	responses []mockResponse
	// Unavailable makes every call fail with INFERENCE_UNAVAILABLE.
	Unavailable bool
	// Calls records every prompt received.
	Calls []string
}

type mockResponse struct {
	promptContains string
	completion     string
}

// NewMockLLMService creates an empty mock.
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{}
}

// Respond registers a canned completion for prompts containing the substring.
func (m *MockLLMService) Respond(promptContains, completion string) *MockLLMService {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{promptContains, completion})
	return m
}

// CallCount returns the number of Complete calls received.
func (m *MockLLMService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Complete implements LLMService.
func (m *MockLLMService) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)
	if m.Unavailable {
		return "", apperrors.InferenceUnavailable(fmt.Errorf("mock inference down"))
	}
	for _, r := range m.responses {
		if strings.Contains(prompt, r.promptContains) {
			return r.completion, nil
		}
	}
	return "", nil
}

var _ LLMService = (*MockLLMService)(nil)
