package ai

import (
	"github.com/lowkeyshift/planwise/internal/profile"
)

// Provider names, in the order the cascade tries them.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// ProviderConfig describes one inference provider candidate.
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// Configured reports whether the candidate has enough configuration to try.
func (c ProviderConfig) Configured() bool {
	if c.Name == ProviderOllama {
		return c.BaseURL != ""
	}
	return c.APIKey != ""
}

// Config represents the inference configuration: a ranked provider list plus
// shared generation parameters.
type Config struct {
	Providers   []ProviderConfig
	MaxTokens   int
	Temperature float64
}

// NewConfigFromProfile builds the ranked provider list from the profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	return &Config{
		Providers: []ProviderConfig{
			{Name: ProviderGroq, APIKey: p.GroqAPIKey, BaseURL: p.GroqBaseURL, Model: p.GroqModel},
			{Name: ProviderOpenAI, APIKey: p.OpenAIAPIKey, Model: p.OpenAIModel},
			{Name: ProviderAnthropic, APIKey: p.AnthropicAPIKey, Model: p.AnthropicModel},
			{Name: ProviderOllama, BaseURL: p.OllamaBaseURL, Model: p.OllamaModel},
		},
		MaxTokens:   512,
		Temperature: 0.1,
	}
}
