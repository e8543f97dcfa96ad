// Package slots extracts {date, time, title} fragments from raw utterances.
// Extraction never fails: the worst case is a SlotSet with every field unset,
// which callers treat as "insufficient information".
package slots

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lowkeyshift/planwise/plugin/ai"
)

// SlotSet holds unnormalized natural-language fragments for one utterance.
// An empty string means the slot is unset. SlotSets are produced fresh per
// turn and never carried over between turns.
type SlotSet struct {
	DatePhrase string
	TimePhrase string
	Title      string
}

// Extractor is the slot extraction interface.
type Extractor interface {
	Extract(ctx context.Context, utterance string) SlotSet
}

var (
	dateKeywordPattern = regexp.MustCompile(
		`(?i)\b(today|tomorrow|yesterday|next week|next (?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)
	isoDatePattern   = regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`)
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	monthDayPattern  = regexp.MustCompile(
		`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+\d{1,2}\b`)

	clockTimePattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`)
	hourTimePattern  = regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:am|pm)\b`)
	// Bare hours are only taken after "at" so counts like "2 meetings" are
	// not mistaken for clock times.
	atHourPattern = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)

	calledTitlePattern = regexp.MustCompile(`(?i)\bcalled\s+(\w+)`)
)

// defaultTitle is used when no title trigger matches.
const defaultTitle = "Meeting"

// Service implements Extractor: deterministic rules first, then one
// best-effort inference call for fields the rules left unresolved.
type Service struct {
	llm ai.LLMService
}

// NewService creates a slot extractor. The inference service may be nil.
func NewService(llm ai.LLMService) *Service {
	return &Service{llm: llm}
}

// Extract produces a best-effort SlotSet for the utterance.
func (s *Service) Extract(ctx context.Context, utterance string) SlotSet {
	set, titleFromRule := s.extractByRules(utterance)

	if set.DatePhrase != "" && set.TimePhrase != "" && titleFromRule {
		return set
	}

	s.enrichByInference(ctx, utterance, &set, titleFromRule)
	return set
}

// extractByRules runs the deterministic tier. The second return reports
// whether the title came from an explicit trigger rather than the default.
func (s *Service) extractByRules(utterance string) (SlotSet, bool) {
	var set SlotSet

	// Date first; the matched span is masked before time extraction so that
	// digits inside an explicit date are not mistaken for a clock time.
	masked := utterance
	for _, pattern := range []*regexp.Regexp{dateKeywordPattern, isoDatePattern, slashDatePattern, monthDayPattern} {
		if loc := pattern.FindStringIndex(utterance); loc != nil {
			set.DatePhrase = utterance[loc[0]:loc[1]]
			masked = utterance[:loc[0]] + strings.Repeat(" ", loc[1]-loc[0]) + utterance[loc[1]:]
			break
		}
	}

	for _, pattern := range []*regexp.Regexp{clockTimePattern, hourTimePattern} {
		if match := pattern.FindString(masked); match != "" {
			set.TimePhrase = strings.TrimSpace(match)
			break
		}
	}
	if set.TimePhrase == "" {
		if match := atHourPattern.FindStringSubmatch(masked); match != nil {
			set.TimePhrase = match[1]
		}
	}

	lower := strings.ToLower(utterance)
	titleFromRule := true
	switch {
	case strings.Contains(lower, "dinner"):
		set.Title = "Dinner"
	case strings.Contains(lower, "lunch"):
		set.Title = "Lunch"
	default:
		if match := calledTitlePattern.FindStringSubmatch(utterance); match != nil {
			set.Title = match[1]
		} else {
			set.Title = defaultTitle
			titleFromRule = false
		}
	}

	return set, titleFromRule
}

// enrichByInference fills still-unset fields with one delegated call. Any
// failure or unparsable response leaves the rule results untouched.
func (s *Service) enrichByInference(ctx context.Context, utterance string, set *SlotSet, titleFromRule bool) {
	if s.llm == nil {
		return
	}

	response, err := s.llm.Complete(ctx, extractionPrompt(utterance))
	if err != nil {
		slog.Debug("slot inference unavailable, keeping rule results", "error", err)
		return
	}

	for key, value := range parseFieldLines(response) {
		switch key {
		case "date":
			if set.DatePhrase == "" {
				set.DatePhrase = value
			}
		case "time":
			if set.TimePhrase == "" {
				set.TimePhrase = value
			}
		case "title":
			if !titleFromRule {
				set.Title = value
			}
		}
	}
}

func extractionPrompt(utterance string) string {
	return fmt.Sprintf(`Extract booking information from this user message: %q

Return only the extracted information, one field per line, in exactly this format:
date: (extracted date like "tomorrow", "next monday", "2026-01-15")
time: (extracted time like "3pm", "15:00")
title: (extracted meeting title)

If any field is missing, write "none" for it. Return nothing but the three lines.`, utterance)
}

// parseFieldLines splits a line-based response on the first colon per line.
// The literal token "none" (case-insensitive) means unset and is dropped.
func parseFieldLines(response string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(response, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, "none") {
			continue
		}
		fields[key] = value
	}
	return fields
}

// Ensure Service implements Extractor
var _ Extractor = (*Service)(nil)
