package calendar

import (
	"context"
	"time"

	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	apperrors "github.com/lowkeyshift/planwise/internal/errors"
)

// googleService implements Service against the Google Calendar API using
// service-account credentials.
type googleService struct {
	service    *gcalendar.Service
	calendarID string
}

// NewGoogleService builds a calendar client from a service-account
// credentials file. calendarID is usually "primary".
func NewGoogleService(ctx context.Context, credentialsFile, calendarID string) (Service, error) {
	service, err := gcalendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcalendar.CalendarScope))
	if err != nil {
		return nil, apperrors.CalendarUnavailable(err)
	}
	return &googleService{service: service, calendarID: calendarID}, nil
}

func (g *googleService) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := g.service.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return false, apperrors.CalendarUnavailable(err)
	}
	return len(events.Items) == 0, nil
}

func (g *googleService) Create(ctx context.Context, summary string, start, end time.Time) (*Event, error) {
	if !end.After(start) {
		return nil, apperrors.InvalidArgument("event end must be after start")
	}
	event := &gcalendar.Event{
		Summary: summary,
		Start:   &gcalendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &gcalendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperrors.CalendarUnavailable(err)
	}

	return &Event{
		ID:      created.Id,
		Summary: summary,
		Start:   start,
		End:     end,
	}, nil
}

func (g *googleService) ListForDay(ctx context.Context, day time.Time) ([]Event, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	result, err := g.service.Events.List(g.calendarID).
		TimeMin(startOfDay.Format(time.RFC3339)).
		TimeMax(endOfDay.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperrors.CalendarUnavailable(err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		event := Event{ID: item.Id, Summary: item.Summary}
		if item.Start != nil && item.Start.DateTime != "" {
			event.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
			if item.End != nil {
				event.End, _ = time.Parse(time.RFC3339, item.End.DateTime)
			}
		} else {
			// Date-only events carry no clock time.
			event.AllDay = true
			if item.Start != nil {
				event.Start, _ = time.Parse("2006-01-02", item.Start.Date)
			}
		}
		events = append(events, event)
	}
	return events, nil
}

var _ Service = (*googleService)(nil)
