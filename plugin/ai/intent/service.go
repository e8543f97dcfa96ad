package intent

import (
	"context"
	"log/slog"
	"time"

	"github.com/lowkeyshift/planwise/plugin/ai"
)

// Service implements the two-tier Classifier.
// Tier 1: rule-based keyword matching, deterministic on common phrasings.
// Tier 2: delegated inference, a best-effort generalization layer consulted
// only when no rule fires; its verdict never overrides a rule match.
type Service struct {
	ruleMatcher   *RuleMatcher
	llmClassifier *LLMClassifier
}

// NewService creates a two-tier classifier. The inference service may be nil.
func NewService(llm ai.LLMService) *Service {
	return &Service{
		ruleMatcher:   NewRuleMatcher(),
		llmClassifier: NewLLMClassifier(llm),
	}
}

// Classify maps an utterance to exactly one intent. Never fails.
func (s *Service) Classify(ctx context.Context, utterance string) Result {
	start := time.Now()

	if matched, ok := s.ruleMatcher.Match(utterance); ok {
		slog.Debug("intent classified by rule tier",
			"intent", matched,
			"latency_ms", time.Since(start).Milliseconds())
		return Result{Intent: matched, Source: SourceRule}
	}

	if inferred, ok := s.llmClassifier.Classify(ctx, utterance); ok {
		slog.Debug("intent classified by inference tier",
			"intent", inferred,
			"latency_ms", time.Since(start).Milliseconds())
		return Result{Intent: inferred, Source: SourceInference}
	}

	slog.Debug("no intent match, defaulting to general chat",
		"latency_ms", time.Since(start).Milliseconds())
	return Result{Intent: IntentGeneralChat, Source: SourceDefault}
}

// Ensure Service implements Classifier
var _ Classifier = (*Service)(nil)
