// Package aitime resolves natural-language date and time phrases into
// absolute instants. The parser is pure: the reference instant is always
// injected by the caller and the wall clock is never read.
package aitime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/lowkeyshift/planwise/internal/errors"
)

// Patterns for time parsing
var (
	meridiemClockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)
	meridiemHourPattern  = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	clockPattern         = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	bareHourPattern      = regexp.MustCompile(`^(\d{1,2})$`)
	looseTimePattern     = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

	nextWeekdayPattern = regexp.MustCompile(`^next\s+([a-z]+)$`)
)

// relDateOffsets maps relative date keywords to day offsets.
var relDateOffsets = map[string]int{
	"today":     0,
	"tomorrow":  1,
	"yesterday": -1,
	"next week": 7,
}

// weekdays maps lowercase weekday names to time.Weekday.
var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// dateFormats is the ordered list of explicit calendar date layouts.
// First match wins, so MM/DD/YYYY shadows DD/MM/YYYY whenever both parse.
var dateFormats = []struct {
	layout   string
	yearless bool
}{
	{"2006-1-2", false},
	{"1/2/2006", false},
	{"2/1/2006", false},
	{"January 2", true},
	{"Jan 2", true},
}

// Parser resolves date and time phrases against an injected reference instant.
type Parser struct {
	loc *time.Location
}

// NewParser creates a parser resolving into the given location.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

// Resolve combines a date phrase and an optional time phrase into one
// absolute instant. An empty time phrase keeps the reference instant's
// time-of-day. Seconds and sub-seconds are always zero.
func (p *Parser) Resolve(datePhrase, timePhrase string, ref time.Time) (time.Time, error) {
	day, err := p.ResolveDate(datePhrase, ref)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute := ref.In(p.loc).Hour(), ref.In(p.loc).Minute()
	if strings.TrimSpace(timePhrase) != "" {
		hour, minute, err = p.ResolveTime(timePhrase)
		if err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.loc), nil
}

// ResolveDate resolves a date phrase to midnight of the target day.
//
// Resolution order: literal keywords (today/tomorrow/yesterday/next week),
// "next <weekday>", then the explicit layouts in dateFormats. Yearless
// layouts assume the reference year and roll forward a year when the date
// has already passed.
func (p *Parser) ResolveDate(phrase string, ref time.Time) (time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	refDay := p.midnight(ref)

	if offset, ok := relDateOffsets[normalized]; ok {
		return refDay.AddDate(0, 0, offset), nil
	}

	if matches := nextWeekdayPattern.FindStringSubmatch(normalized); len(matches) > 1 {
		if target, ok := weekdays[matches[1]]; ok {
			delta := int(target) - int(refDay.Weekday())
			// A delta of zero or less means that weekday is today or already
			// passed this week; the result must be strictly in the future.
			if delta <= 0 {
				delta += 7
			}
			return refDay.AddDate(0, 0, delta), nil
		}
	}

	for _, format := range dateFormats {
		t, err := time.ParseInLocation(format.layout, normalized, p.loc)
		if err != nil {
			continue
		}
		if !format.yearless {
			return p.midnight(t), nil
		}
		candidate := time.Date(refDay.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
		if candidate.Before(refDay) {
			candidate = candidate.AddDate(1, 0, 0)
		}
		return candidate, nil
	}

	return time.Time{}, apperrors.UnparseableDate(phrase)
}

// ResolveTime resolves a clock phrase to an hour and minute.
//
// Resolution order: 12-hour forms with meridiem, 24-hour forms, then a loose
// scan for the first one-or-two digit number with an optional am/pm marker.
func (p *Parser) ResolveTime(phrase string) (hour, minute int, err error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))

	if matches := meridiemClockPattern.FindStringSubmatch(normalized); matches != nil {
		return p.convert(phrase, matches[1], matches[2], matches[3])
	}
	if matches := meridiemHourPattern.FindStringSubmatch(normalized); matches != nil {
		return p.convert(phrase, matches[1], "0", matches[2])
	}
	if matches := clockPattern.FindStringSubmatch(normalized); matches != nil {
		return p.convert(phrase, matches[1], matches[2], "")
	}
	if matches := bareHourPattern.FindStringSubmatch(normalized); matches != nil {
		return p.convert(phrase, matches[1], "0", "")
	}

	// Loose fallback: first digit run plus optional meridiem marker anywhere.
	if matches := looseTimePattern.FindStringSubmatch(normalized); matches != nil {
		minutes := matches[2]
		if minutes == "" {
			minutes = "0"
		}
		return p.convert(phrase, matches[1], minutes, matches[3])
	}

	return 0, 0, apperrors.UnparseableTime(phrase)
}

// convert applies the standard 12-to-24-hour conversion and range checks.
func (p *Parser) convert(phrase, hourStr, minuteStr, meridiem string) (int, int, error) {
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minuteStr)

	switch meridiem {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, apperrors.UnparseableTime(phrase)
	}
	return hour, minute, nil
}

func (p *Parser) midnight(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}
