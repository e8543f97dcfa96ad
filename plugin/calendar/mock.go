package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lowkeyshift/planwise/internal/errors"
)

// MockService is an in-memory calendar for demo mode and tests. It records
// call counts so tests can assert which calendar operations a turn made.
type MockService struct {
	mu     sync.Mutex
	events []Event

	// Unavailable makes every call fail with CALENDAR_UNAVAILABLE.
	Unavailable bool
	// FailCreate makes Create fail while leaving probes working.
	FailCreate bool

	IsFreeCalls int
	CreateCalls int
	ListCalls   int
}

// NewMockService creates an empty in-memory calendar.
func NewMockService() *MockService {
	return &MockService{}
}

// Seed adds an event directly, bypassing call accounting.
func (m *MockService) Seed(summary string, start, end time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{
		ID:      uuid.New().String(),
		Summary: summary,
		Start:   start,
		End:     end,
	})
}

func (m *MockService) IsFree(_ context.Context, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IsFreeCalls++
	if m.Unavailable {
		return false, apperrors.CalendarUnavailable(nil)
	}
	for _, e := range m.events {
		if start.Before(e.End) && end.After(e.Start) {
			return false, nil
		}
	}
	return true, nil
}

func (m *MockService) Create(_ context.Context, summary string, start, end time.Time) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if !end.After(start) {
		return nil, apperrors.InvalidArgument("event end must be after start")
	}
	if m.Unavailable || m.FailCreate {
		return nil, apperrors.CalendarUnavailable(nil)
	}
	event := Event{
		ID:      uuid.New().String(),
		Summary: summary,
		Start:   start,
		End:     end,
	}
	m.events = append(m.events, event)
	return &event, nil
}

func (m *MockService) ListForDay(_ context.Context, day time.Time) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.Unavailable {
		return nil, apperrors.CalendarUnavailable(nil)
	}

	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	out := []Event{}
	for _, e := range m.events {
		if e.Start.Before(endOfDay) && !e.Start.Before(startOfDay) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

var _ Service = (*MockService)(nil)
