package profile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsToDemo(t *testing.T) {
	p := &Profile{Mode: "something-else", Timezone: "UTC"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
	assert.Equal(t, 60, p.SlotDurationMinutes)
	// Demo mode needs no data directory.
	assert.Empty(t, p.DSN)
}

func TestValidate_ProdNeedsDataDir(t *testing.T) {
	p := &Profile{Mode: "prod", Timezone: "UTC", Data: "/does/not/exist"}
	assert.Error(t, p.Validate())
}

func TestValidate_DSNDefault(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Mode: "prod", Timezone: "UTC", Data: dir}
	require.NoError(t, p.Validate())
	assert.Equal(t, filepath.Join(dir, "planwise_prod.db"), p.DSN)
	assert.Equal(t, 30, p.SessionRetentionDays)
}

func TestValidate_InvalidTimezone(t *testing.T) {
	p := &Profile{Mode: "demo", Timezone: "Mars/Olympus_Mons"}
	assert.Error(t, p.Validate())
}

func TestLocation(t *testing.T) {
	p := &Profile{Timezone: "America/New_York"}
	loc := p.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())

	p = &Profile{Timezone: "nonsense"}
	assert.Equal(t, time.UTC, p.Location())
}

func TestFromEnv_Defaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, "https://api.groq.com/openai/v1", p.GroqBaseURL)
	assert.Equal(t, "primary", p.CalendarID)
	assert.Equal(t, "UTC", p.Timezone)
}

func TestFromEnv_ReadsKeys(t *testing.T) {
	t.Setenv("PLANWISE_GROQ_API_KEY", "gsk-test")
	t.Setenv("PLANWISE_CALENDAR_CREDENTIALS", "/etc/planwise/sa.json")
	t.Setenv("PLANWISE_SESSION_RETENTION_DAYS", "90")

	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, "gsk-test", p.GroqAPIKey)
	assert.True(t, p.IsInferenceConfigured())
	assert.True(t, p.IsCalendarConfigured())
	assert.Equal(t, 90, p.SessionRetentionDays)
}

func TestIsInferenceConfigured(t *testing.T) {
	assert.False(t, (&Profile{}).IsInferenceConfigured())
	assert.True(t, (&Profile{OllamaBaseURL: "http://localhost:11434"}).IsInferenceConfigured())
	assert.True(t, (&Profile{AnthropicAPIKey: "sk"}).IsInferenceConfigured())
}
