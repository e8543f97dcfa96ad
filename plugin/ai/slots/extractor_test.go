package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lowkeyshift/planwise/plugin/ai"
)

func TestExtractByRules(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name      string
		utterance string
		want      SlotSet
	}{
		{
			"keyword date and meridiem time",
			"book a meeting tomorrow at 3pm",
			SlotSet{DatePhrase: "tomorrow", TimePhrase: "3pm", Title: "Meeting"},
		},
		{
			"next weekday",
			"set up lunch next friday at 12:30",
			SlotSet{DatePhrase: "next friday", TimePhrase: "12:30", Title: "Lunch"},
		},
		{
			"explicit iso date digits not taken as time",
			"book a meeting on 2026-01-15 at 10am",
			SlotSet{DatePhrase: "2026-01-15", TimePhrase: "10am", Title: "Meeting"},
		},
		{
			"slash date",
			"dinner on 03/04/2026 at 7 pm",
			SlotSet{DatePhrase: "03/04/2026", TimePhrase: "7 pm", Title: "Dinner"},
		},
		{
			"month name date",
			"book something on March 15 at 9am",
			SlotSet{DatePhrase: "March 15", TimePhrase: "9am", Title: "Meeting"},
		},
		{
			"called title",
			"book a meeting called Standup tomorrow at 9am",
			SlotSet{DatePhrase: "tomorrow", TimePhrase: "9am", Title: "Standup"},
		},
		{
			"bare hour after at",
			"book dinner tomorrow at 7",
			SlotSet{DatePhrase: "tomorrow", TimePhrase: "7", Title: "Dinner"},
		},
		{
			"bare digit without at is not a time",
			"book 2 meetings tomorrow",
			SlotSet{DatePhrase: "tomorrow", Title: "Meeting"},
		},
		{
			"nothing to extract",
			"book a meeting",
			SlotSet{Title: "Meeting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Extract(context.Background(), tt.utterance)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_InferenceEnrichment(t *testing.T) {
	t.Run("FillsMissingFieldsOnly", func(t *testing.T) {
		llm := ai.NewMockLLMService().Respond("Extract booking information",
			"date: next monday\ntime: 14:00\ntitle: Budget review")
		svc := NewService(llm)

		// Rules find the time but not the date; inference must fill the date
		// and title while the rule-extracted time is kept.
		got := svc.Extract(context.Background(), "put in the budget review for 14:00")
		assert.Equal(t, "next monday", got.DatePhrase)
		assert.Equal(t, "14:00", got.TimePhrase)
		assert.Equal(t, "Budget review", got.Title)
	})

	t.Run("NoneMeansUnset", func(t *testing.T) {
		llm := ai.NewMockLLMService().Respond("Extract booking information",
			"date: None\ntime: none\ntitle: none")
		svc := NewService(llm)

		got := svc.Extract(context.Background(), "book a meeting")
		assert.Empty(t, got.DatePhrase)
		assert.Empty(t, got.TimePhrase)
		assert.Equal(t, "Meeting", got.Title)
	})

	t.Run("InferenceDownKeepsRuleResults", func(t *testing.T) {
		llm := ai.NewMockLLMService()
		llm.Unavailable = true
		svc := NewService(llm)

		got := svc.Extract(context.Background(), "book a meeting today at 9am")
		assert.Equal(t, "today", got.DatePhrase)
		assert.Equal(t, "9am", got.TimePhrase)
		assert.Equal(t, "Meeting", got.Title)
	})

	t.Run("GarbageResponseIgnored", func(t *testing.T) {
		llm := ai.NewMockLLMService().Respond("Extract booking information",
			"sure! here is what I found")
		svc := NewService(llm)

		got := svc.Extract(context.Background(), "book a meeting")
		assert.Empty(t, got.DatePhrase)
		assert.Empty(t, got.TimePhrase)
		assert.Equal(t, "Meeting", got.Title)
	})

	t.Run("RuleCompleteSetSkipsInference", func(t *testing.T) {
		llm := ai.NewMockLLMService()
		svc := NewService(llm)

		got := svc.Extract(context.Background(), "dinner tomorrow at 7pm")
		assert.Equal(t, "Dinner", got.Title)
		assert.Zero(t, llm.CallCount())
	})
}

func TestParseFieldLines(t *testing.T) {
	fields := parseFieldLines("date: tomorrow\ntime: 3:30 pm\ntitle: Sync: weekly")
	assert.Equal(t, "tomorrow", fields["date"])
	assert.Equal(t, "3:30 pm", fields["time"])
	// Split on the first colon only.
	assert.Equal(t, "Sync: weekly", fields["title"])
}
