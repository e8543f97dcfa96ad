// Package agent implements the dialogue orchestrator. Each Handle call is one
// complete turn: classify the utterance, run the intent's branch, format a
// reply, and log both sides of the exchange. No state survives between turns
// except the conversation history, which the parsing components never read.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lowkeyshift/planwise/plugin/ai"
	"github.com/lowkeyshift/planwise/plugin/ai/aitime"
	"github.com/lowkeyshift/planwise/plugin/ai/intent"
	"github.com/lowkeyshift/planwise/plugin/ai/session"
	"github.com/lowkeyshift/planwise/plugin/ai/slots"
	"github.com/lowkeyshift/planwise/plugin/calendar"
	apperrors "github.com/lowkeyshift/planwise/internal/errors"
	"github.com/lowkeyshift/planwise/internal/observability"
)

// defaultDuration is the meeting length assumed when only a start time is
// known.
const defaultDuration = time.Hour

// maxListedEvents caps schedule listings to keep replies readable.
const maxListedEvents = 5

// maxListedSlots caps availability-scan listings.
const maxListedSlots = 6

// Reply is the orchestrator's answer to one utterance. Success is false only
// when the turn itself faulted; clarifications and conflict messages are
// successful turns.
type Reply struct {
	Text    string `json:"response"`
	Success bool   `json:"success"`
}

// Orchestrator routes utterances through intent classification, slot
// extraction, temporal resolution and the calendar capability. All
// collaborators are injected at construction; the orchestrator holds no
// ambient state.
type Orchestrator struct {
	classifier intent.Classifier
	extractor  slots.Extractor
	parser     *aitime.Parser
	calendar   calendar.Service
	sessions   session.Service
	llm        ai.LLMService

	slotDuration time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNowFunc overrides the reference-instant source. Used in tests.
func WithNowFunc(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithSlotDuration overrides the availability-scan slot length.
func WithSlotDuration(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.slotDuration = d
		}
	}
}

// New creates an orchestrator. The inference service may be nil; everything
// else is required.
func New(
	classifier intent.Classifier,
	extractor slots.Extractor,
	parser *aitime.Parser,
	cal calendar.Service,
	sessions session.Service,
	llm ai.LLMService,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		classifier:   classifier,
		extractor:    extractor,
		parser:       parser,
		calendar:     cal,
		sessions:     sessions,
		llm:          llm,
		slotDuration: calendar.DefaultSlotDuration,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle runs one conversation turn. It never returns an error: any fault
// inside a branch is converted to an apology reply at the turn boundary, so
// one bad turn cannot poison the session.
func (o *Orchestrator) Handle(ctx context.Context, sessionID, utterance string) Reply {
	tc := observability.NewTurnContext(o.logger, sessionID)
	reply := Reply{Text: msgApology, Success: false}

	o.appendTurn(ctx, sessionID, session.RoleUser, utterance)

	func() {
		defer func() {
			if r := recover(); r != nil {
				tc.Error("turn panicked", nil, slog.Any("panic", r))
			}
		}()
		reply = o.dispatch(ctx, tc, utterance)
	}()

	o.appendTurn(ctx, sessionID, session.RoleAssistant, reply.Text)

	tc.Info("turn completed",
		slog.Int64(observability.LogFieldDuration, tc.DurationMs()),
		slog.Int(observability.LogFieldMessageLen, len(utterance)),
		slog.Bool("success", reply.Success),
	)
	return reply
}

func (o *Orchestrator) dispatch(ctx context.Context, tc *observability.TurnContext, utterance string) Reply {
	result := o.classifier.Classify(ctx, utterance)
	tc.Debug("intent classified",
		slog.String(observability.LogFieldIntent, string(result.Intent)),
		slog.String("source", string(result.Source)),
	)

	switch result.Intent {
	case intent.IntentBookMeeting:
		return o.handleBooking(ctx, tc, utterance)
	case intent.IntentCheckAvailability:
		return o.handleAvailability(ctx, tc, utterance)
	case intent.IntentCheckSchedule:
		return o.handleSchedule(ctx, tc, utterance)
	case intent.IntentFindAvailableSlots:
		return o.handleSlotScan(ctx, tc, utterance)
	default:
		return o.handleGeneralChat(ctx, utterance)
	}
}

// warnCalendarFault logs a failed calendar call with its taxonomy code.
func warnCalendarFault(tc *observability.TurnContext, op string, err error) {
	tc.Warn("calendar call failed",
		slog.String("operation", op),
		slog.String(observability.LogFieldErrorCode,
			string(apperrors.GetCodeFromError(err, apperrors.ErrCodeCalendarUnavailable))),
		slog.String("error", err.Error()),
	)
}

// handleBooking books a meeting: extract, resolve, probe, create. A missing
// date or time phrase ends the turn with a clarification and no calendar
// call.
func (o *Orchestrator) handleBooking(ctx context.Context, tc *observability.TurnContext, utterance string) Reply {
	set := o.extractor.Extract(ctx, utterance)
	if set.DatePhrase == "" || set.TimePhrase == "" {
		return Reply{Text: msgBookingClarification, Success: true}
	}

	start, err := o.parser.Resolve(set.DatePhrase, set.TimePhrase, o.now())
	if err != nil {
		return Reply{Text: msgBookingClarification, Success: true}
	}
	end := start.Add(defaultDuration)

	free, err := o.calendar.IsFree(ctx, start, end)
	if err != nil {
		warnCalendarFault(tc, "is_free", err)
		return Reply{Text: msgCalendarDown, Success: false}
	}
	if !free {
		return Reply{Text: conflictMessage(set.DatePhrase, set.TimePhrase), Success: true}
	}

	if _, err := o.calendar.Create(ctx, set.Title, start, end); err != nil {
		warnCalendarFault(tc, "create", err)
		return Reply{Text: msgBookingFailed, Success: false}
	}
	return Reply{Text: bookedMessage(set.Title, set.DatePhrase, set.TimePhrase), Success: true}
}

// handleAvailability reports whether a specific interval is free. Both a date
// and a time are required; the reply asks for both when either is missing.
func (o *Orchestrator) handleAvailability(ctx context.Context, tc *observability.TurnContext, utterance string) Reply {
	set := o.extractor.Extract(ctx, utterance)
	if set.DatePhrase == "" || set.TimePhrase == "" {
		return Reply{Text: msgAvailabilityClarification, Success: true}
	}

	start, err := o.parser.Resolve(set.DatePhrase, set.TimePhrase, o.now())
	if err != nil {
		return Reply{Text: msgAvailabilityClarification, Success: true}
	}
	end := start.Add(defaultDuration)

	free, err := o.calendar.IsFree(ctx, start, end)
	if err != nil {
		warnCalendarFault(tc, "is_free", err)
		return Reply{Text: msgCalendarDown, Success: false}
	}
	return Reply{Text: availabilityMessage(set.DatePhrase, set.TimePhrase, free), Success: true}
}

// handleSchedule lists the day's events.
func (o *Orchestrator) handleSchedule(ctx context.Context, tc *observability.TurnContext, utterance string) Reply {
	day, dayName := o.resolveQueryDay(ctx, utterance)

	events, err := o.calendar.ListForDay(ctx, day)
	if err != nil {
		warnCalendarFault(tc, "list_for_day", err)
		return Reply{Text: msgCalendarDown, Success: false}
	}
	return Reply{Text: scheduleMessage(dayName, events), Success: true}
}

// handleSlotScan runs the business-hours availability scan.
func (o *Orchestrator) handleSlotScan(ctx context.Context, tc *observability.TurnContext, utterance string) Reply {
	day, dayName := o.resolveQueryDay(ctx, utterance)

	open, err := calendar.FindAvailableSlots(ctx, o.calendar, day, o.slotDuration)
	if err != nil {
		warnCalendarFault(tc, "find_available_slots", err)
		return Reply{Text: msgCalendarDown, Success: false}
	}
	return Reply{Text: slotsMessage(dayName, open), Success: true}
}

// handleGeneralChat delegates to inference with a persona prompt; without
// inference the reply is a static message naming the supported actions.
func (o *Orchestrator) handleGeneralChat(ctx context.Context, utterance string) Reply {
	if o.llm != nil {
		response, err := o.llm.Complete(ctx, personaPrompt(utterance))
		if text := strings.TrimSpace(response); err == nil && text != "" {
			return Reply{Text: text, Success: true}
		}
	}
	return Reply{Text: msgChatFallback, Success: true}
}

// resolveQueryDay extracts a date phrase for day-scoped queries. The literal
// keywords today/tomorrow/yesterday resolve inline; everything else goes
// through the temporal parser, and an absent or unparseable phrase defaults
// to today.
func (o *Orchestrator) resolveQueryDay(ctx context.Context, utterance string) (time.Time, string) {
	ref := o.now()
	lower := strings.ToLower(utterance)

	switch {
	case strings.Contains(lower, "today"):
		return ref, "today"
	case strings.Contains(lower, "tomorrow"):
		return ref.AddDate(0, 0, 1), "tomorrow"
	case strings.Contains(lower, "yesterday"):
		return ref.AddDate(0, 0, -1), "yesterday"
	}

	set := o.extractor.Extract(ctx, utterance)
	if set.DatePhrase == "" {
		return ref, "today"
	}
	day, err := o.parser.ResolveDate(set.DatePhrase, ref)
	if err != nil {
		return ref, "today"
	}
	return day, set.DatePhrase
}

func (o *Orchestrator) appendTurn(ctx context.Context, sessionID string, role session.Role, content string) {
	turn := session.Turn{Role: role, Content: content, Timestamp: o.now()}
	if err := o.sessions.Append(ctx, sessionID, turn); err != nil {
		o.logger.Warn("failed to append conversation turn",
			observability.LogFieldSessionID, sessionID, "error", err)
	}
}
