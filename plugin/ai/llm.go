// Package ai provides the language inference capability consumed by the
// conversational core. Every implementation returns one normalized response
// shape: a plain completion string.
package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	apperrors "github.com/lowkeyshift/planwise/internal/errors"
	"github.com/lowkeyshift/planwise/internal/observability"
)

// LLMService is the language inference interface. A failed call yields an
// INFERENCE_UNAVAILABLE error; callers must treat it as non-fatal and fall
// back to rule-only behavior.
type LLMService interface {
	// Complete sends a prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)
}

type llmService struct {
	model       llms.Model
	provider    string
	maxTokens   int
	temperature float64
}

// NewLLMService walks the ranked provider candidates and constructs a client
// for the first one that is configured. The choice is made once here, never
// re-decided per call. Returns nil (and no error) when no provider is
// configured; a nil service means inference is absent and rule tiers carry
// the whole load.
func NewLLMService(cfg *Config) (LLMService, error) {
	for _, candidate := range cfg.Providers {
		if !candidate.Configured() {
			continue
		}

		model, err := newModel(candidate)
		if err != nil {
			slog.Warn("inference provider initialization failed, trying next",
				observability.LogFieldProvider, candidate.Name, "error", err)
			continue
		}

		slog.Info("inference provider selected",
			observability.LogFieldProvider, candidate.Name, "model", candidate.Model)
		return &llmService{
			model:       model,
			provider:    candidate.Name,
			maxTokens:   cfg.MaxTokens,
			temperature: cfg.Temperature,
		}, nil
	}

	return nil, nil
}

func newModel(candidate ProviderConfig) (llms.Model, error) {
	switch candidate.Name {
	case ProviderGroq:
		// Groq exposes an OpenAI-compatible API behind its own base URL.
		return openai.New(
			openai.WithToken(candidate.APIKey),
			openai.WithBaseURL(candidate.BaseURL),
			openai.WithModel(candidate.Model),
		)
	case ProviderOpenAI:
		return openai.New(
			openai.WithToken(candidate.APIKey),
			openai.WithModel(candidate.Model),
		)
	case ProviderAnthropic:
		return anthropic.New(
			anthropic.WithToken(candidate.APIKey),
			anthropic.WithModel(candidate.Model),
		)
	case ProviderOllama:
		return ollama.New(
			ollama.WithServerURL(candidate.BaseURL),
			ollama.WithModel(candidate.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported inference provider: %s", candidate.Name)
	}
}

// Complete performs a single completion attempt. No retry: the caller treats
// any failure as "service unavailable".
func (s *llmService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithMaxTokens(s.maxTokens),
		llms.WithTemperature(s.temperature),
	)
	if err != nil {
		return "", apperrors.InferenceUnavailable(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.InferenceUnavailable(fmt.Errorf("empty response from %s", s.provider))
	}
	return resp.Choices[0].Content, nil
}
