package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where planwise stores its session log
	DSN string
	// Version is the current version of server
	Version string
	// Timezone is the IANA zone all temporal resolution happens in
	Timezone string

	// Inference configuration. Providers are tried in ranked order at
	// startup: groq, openai, anthropic, ollama.
	GroqAPIKey       string // PLANWISE_GROQ_API_KEY
	GroqBaseURL      string // PLANWISE_GROQ_BASE_URL (default: https://api.groq.com/openai/v1)
	GroqModel        string // PLANWISE_GROQ_MODEL (default: llama3-8b-8192)
	OpenAIAPIKey     string // PLANWISE_OPENAI_API_KEY
	OpenAIModel      string // PLANWISE_OPENAI_MODEL (default: gpt-4o-mini)
	AnthropicAPIKey  string // PLANWISE_ANTHROPIC_API_KEY
	AnthropicModel   string // PLANWISE_ANTHROPIC_MODEL (default: claude-3-5-haiku-latest)
	OllamaBaseURL    string // PLANWISE_OLLAMA_BASE_URL
	OllamaModel      string // PLANWISE_OLLAMA_MODEL (default: llama3)

	// Calendar configuration.
	CalendarCredentials string // PLANWISE_CALENDAR_CREDENTIALS (service account JSON path)
	CalendarID          string // PLANWISE_CALENDAR_ID (default: primary)

	// SlotDurationMinutes is the slot length used by availability scans.
	SlotDurationMinutes int // PLANWISE_SLOT_DURATION_MINUTES (default: 60)

	// SessionRetentionDays controls cleanup of persisted sessions.
	SessionRetentionDays int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsInferenceConfigured reports whether any inference provider has credentials.
func (p *Profile) IsInferenceConfigured() bool {
	return p.GroqAPIKey != "" || p.OpenAIAPIKey != "" || p.AnthropicAPIKey != "" || p.OllamaBaseURL != ""
}

// IsCalendarConfigured reports whether the Google Calendar backend can be used.
func (p *Profile) IsCalendarConfigured() bool {
	return p.CalendarCredentials != ""
}

// Location resolves the configured timezone, falling back to UTC.
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from PLANWISE_* environment variables.
func (p *Profile) FromEnv() {
	p.GroqAPIKey = os.Getenv("PLANWISE_GROQ_API_KEY")
	p.GroqBaseURL = getEnvOrDefault("PLANWISE_GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	p.GroqModel = getEnvOrDefault("PLANWISE_GROQ_MODEL", "llama3-8b-8192")
	p.OpenAIAPIKey = os.Getenv("PLANWISE_OPENAI_API_KEY")
	p.OpenAIModel = getEnvOrDefault("PLANWISE_OPENAI_MODEL", "gpt-4o-mini")
	p.AnthropicAPIKey = os.Getenv("PLANWISE_ANTHROPIC_API_KEY")
	p.AnthropicModel = getEnvOrDefault("PLANWISE_ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	p.OllamaBaseURL = os.Getenv("PLANWISE_OLLAMA_BASE_URL")
	p.OllamaModel = getEnvOrDefault("PLANWISE_OLLAMA_MODEL", "llama3")

	p.CalendarCredentials = os.Getenv("PLANWISE_CALENDAR_CREDENTIALS")
	p.CalendarID = getEnvOrDefault("PLANWISE_CALENDAR_ID", "primary")

	if minutes, err := strconv.Atoi(os.Getenv("PLANWISE_SLOT_DURATION_MINUTES")); err == nil && minutes > 0 {
		p.SlotDurationMinutes = minutes
	}
	if days, err := strconv.Atoi(os.Getenv("PLANWISE_SESSION_RETENTION_DAYS")); err == nil && days > 0 {
		p.SessionRetentionDays = days
	}

	if p.Timezone == "" {
		p.Timezone = getEnvOrDefault("PLANWISE_TIMEZONE", "UTC")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return errors.Wrapf(err, "invalid timezone %q", p.Timezone)
	}

	if p.SlotDurationMinutes <= 0 {
		p.SlotDurationMinutes = 60
	}

	if p.SessionRetentionDays <= 0 {
		p.SessionRetentionDays = 30
	}

	// Demo mode runs fully in memory and needs no data directory.
	if p.Mode == "demo" {
		return nil
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.DSN == "" {
		p.DSN = filepath.Join(dataDir, fmt.Sprintf("planwise_%s.db", p.Mode))
	}

	return nil
}
