package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowkeyshift/planwise/plugin/ai"
	"github.com/lowkeyshift/planwise/plugin/ai/aitime"
	"github.com/lowkeyshift/planwise/plugin/ai/intent"
	"github.com/lowkeyshift/planwise/plugin/ai/session"
	"github.com/lowkeyshift/planwise/plugin/ai/slots"
	"github.com/lowkeyshift/planwise/plugin/calendar"
)

// Tuesday, 2026-01-27 10:15 UTC.
var refNow = time.Date(2026, 1, 27, 10, 15, 0, 0, time.UTC)

type fixture struct {
	orch     *Orchestrator
	calendar *calendar.MockService
	sessions session.Service
	llm      *ai.MockLLMService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	llm := ai.NewMockLLMService()
	llm.Unavailable = true // rule-only by default
	cal := calendar.NewMockService()
	sessions := session.NewMemoryStore()

	orch := New(
		intent.NewService(llm),
		slots.NewService(llm),
		aitime.NewParser(time.UTC),
		cal,
		sessions,
		llm,
		WithNowFunc(func() time.Time { return refNow }),
	)
	return &fixture{orch: orch, calendar: cal, sessions: sessions, llm: llm}
}

func TestHandle_BookingHappyPath(t *testing.T) {
	f := newFixture(t)

	reply := f.orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "Successfully booked 'Meeting' for tomorrow at 3pm")

	events, err := f.calendar.ListForDay(context.Background(), refNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Meeting", events[0].Summary)
	assert.Equal(t, time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2026, 1, 28, 16, 0, 0, 0, time.UTC), events[0].End)
}

func TestHandle_BookingMissingSlotsMakesNoCalendarCall(t *testing.T) {
	f := newFixture(t)

	reply := f.orch.Handle(context.Background(), "s1", "book a meeting")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "date, time, and title")
	assert.Zero(t, f.calendar.IsFreeCalls)
	assert.Zero(t, f.calendar.CreateCalls)
}

func TestHandle_BookingConflictDoesNotCreate(t *testing.T) {
	f := newFixture(t)
	f.calendar.Seed("Standup",
		time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 28, 16, 0, 0, 0, time.UTC))

	reply := f.orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "3pm on tomorrow is not available")
	assert.Zero(t, f.calendar.CreateCalls)
}

func TestHandle_BookingCreateFailure(t *testing.T) {
	f := newFixture(t)
	f.calendar.FailCreate = true

	reply := f.orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")
	assert.False(t, reply.Success)
	assert.Contains(t, reply.Text, "couldn't create")
}

func TestHandle_BookingCalendarDown(t *testing.T) {
	f := newFixture(t)
	f.calendar.Unavailable = true

	reply := f.orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")
	assert.False(t, reply.Success)
	assert.Contains(t, reply.Text, "can't reach your calendar")
}

func TestHandle_Availability(t *testing.T) {
	f := newFixture(t)

	reply := f.orch.Handle(context.Background(), "s1", "is 3pm free tomorrow")
	assert.True(t, reply.Success)
	assert.Equal(t, "3pm on tomorrow is available.", reply.Text)

	f.calendar.Seed("Standup",
		time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 28, 16, 0, 0, 0, time.UTC))

	reply = f.orch.Handle(context.Background(), "s1", "is 3pm free tomorrow")
	assert.True(t, reply.Success)
	assert.Equal(t, "3pm on tomorrow is not available.", reply.Text)
}

func TestHandle_AvailabilityNeedsDateAndTime(t *testing.T) {
	f := newFixture(t)

	reply := f.orch.Handle(context.Background(), "s1", "check if I can meet")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "both the date and the time")
	assert.Zero(t, f.calendar.IsFreeCalls)
}

func TestHandle_Schedule(t *testing.T) {
	f := newFixture(t)

	t.Run("EmptyDay", func(t *testing.T) {
		reply := f.orch.Handle(context.Background(), "s1", "what's my schedule today")
		assert.True(t, reply.Success)
		assert.Equal(t, "Today is wide open! No events scheduled.", reply.Text)
	})

	t.Run("ListsEventsInOrder", func(t *testing.T) {
		f.calendar.Seed("Standup",
			time.Date(2026, 1, 27, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 27, 9, 30, 0, 0, time.UTC))
		f.calendar.Seed("Lunch",
			time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 27, 13, 0, 0, 0, time.UTC))

		reply := f.orch.Handle(context.Background(), "s1", "what's my schedule today")
		assert.True(t, reply.Success)
		assert.Contains(t, reply.Text, "Here's what's on your schedule today:")
		assert.Contains(t, reply.Text, "09:00 AM: Standup")
		assert.Contains(t, reply.Text, "12:00 PM: Lunch")
	})
}

func TestHandle_SlotScan(t *testing.T) {
	f := newFixture(t)
	f.calendar.Seed("Standup",
		time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 28, 11, 0, 0, 0, time.UTC))

	reply := f.orch.Handle(context.Background(), "s1", "any free slots tomorrow")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "Available slots for tomorrow:")
	assert.Contains(t, reply.Text, "09:00 AM - 10:00 AM")
	assert.NotContains(t, reply.Text, "10:00 AM - 11:00 AM")
}

func TestHandle_SlotScanFullyBooked(t *testing.T) {
	f := newFixture(t)
	f.calendar.Seed("Offsite",
		time.Date(2026, 1, 28, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 28, 19, 0, 0, 0, time.UTC))

	reply := f.orch.Handle(context.Background(), "s1", "any free slots tomorrow")
	assert.True(t, reply.Success)
	assert.Equal(t, "No available slots found for tomorrow.", reply.Text)
}

func TestHandle_GeneralChat(t *testing.T) {
	t.Run("InferenceDownUsesStaticFallback", func(t *testing.T) {
		f := newFixture(t)

		reply := f.orch.Handle(context.Background(), "s1", "hello there")
		assert.True(t, reply.Success)
		assert.Equal(t, msgChatFallback, reply.Text)
	})

	t.Run("InferenceReplyPassedThrough", func(t *testing.T) {
		f := newFixture(t)
		f.llm.Unavailable = false
		f.llm.Respond("calendar assistant", "Hi! How can I help with your calendar?\n")
		// The classifier also consults inference; an unmapped answer falls
		// back to general chat.
		f.llm.Respond("intent", "none of these")

		reply := f.orch.Handle(context.Background(), "s1", "hello there")
		assert.True(t, reply.Success)
		assert.Equal(t, "Hi! How can I help with your calendar?", reply.Text)
	})
}

func TestHandle_RecordsBothTurns(t *testing.T) {
	f := newFixture(t)

	f.orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")

	turns, err := f.sessions.List(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, session.RoleUser, turns[0].Role)
	assert.Equal(t, "book a meeting tomorrow at 3pm", turns[0].Content)
	assert.Equal(t, session.RoleAssistant, turns[1].Role)
	assert.Contains(t, turns[1].Content, "Successfully booked")
}

func TestHandle_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	f.orch.Handle(context.Background(), "alice", "book a meeting tomorrow at 3pm")
	f.orch.Handle(context.Background(), "bob", "hello there")

	aliceTurns, err := f.sessions.List(context.Background(), "alice")
	require.NoError(t, err)
	bobTurns, err := f.sessions.List(context.Background(), "bob")
	require.NoError(t, err)

	assert.Len(t, aliceTurns, 2)
	assert.Len(t, bobTurns, 2)
	assert.NotEqual(t, aliceTurns[0].Content, bobTurns[0].Content)
}

// A scripted classifier steers utterances with no keyword evidence into a
// chosen branch.
func TestDispatch_WithScriptedClassifier(t *testing.T) {
	llm := ai.NewMockLLMService()
	llm.Unavailable = true
	cal := calendar.NewMockService()

	classifier := intent.NewMockClassifier()
	classifier.Overrides["how does tomorrow look?"] = intent.IntentFindAvailableSlots

	orch := New(
		classifier,
		slots.NewService(llm),
		aitime.NewParser(time.UTC),
		cal,
		session.NewMemoryStore(),
		llm,
		WithNowFunc(func() time.Time { return refNow }),
	)

	reply := orch.Handle(context.Background(), "s1", "how does tomorrow look?")
	assert.True(t, reply.Success)
	assert.Contains(t, reply.Text, "Available slots for tomorrow:")
	assert.Positive(t, cal.IsFreeCalls)
}

type panickyCalendar struct{ calendar.Service }

func (panickyCalendar) IsFree(context.Context, time.Time, time.Time) (bool, error) {
	panic("boom")
}

func TestHandle_PanicBecomesApology(t *testing.T) {
	llm := ai.NewMockLLMService()
	llm.Unavailable = true
	sessions := session.NewMemoryStore()

	orch := New(
		intent.NewService(llm),
		slots.NewService(llm),
		aitime.NewParser(time.UTC),
		panickyCalendar{},
		sessions,
		llm,
		WithNowFunc(func() time.Time { return refNow }),
	)

	reply := orch.Handle(context.Background(), "s1", "book a meeting tomorrow at 3pm")
	assert.False(t, reply.Success)
	assert.Equal(t, msgApology, reply.Text)

	// The faulted turn is still recorded and the next turn works.
	turns, err := sessions.List(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, turns, 2)

	reply = orch.Handle(context.Background(), "s1", "hello there")
	assert.True(t, reply.Success)
}
