package sync

import (
	"time"

	"google.golang.org/api/calendar/v3"
)

// DefaultTitle is used when the provider omits an event summary.
const DefaultTitle = "Untitled Event"

// Candidate is a normalized event waiting to be attached to a profile.
// Owner, visibility and row identity are assigned during reconciliation.
type Candidate struct {
	GoogleEventID string
	Title         string
	StartTime     time.Time
	EndTime       time.Time
	Location      *string
}

// Normalize maps raw provider events onto candidates, preserving input
// order. Events that cannot be scheduled (no timed start and no all-day
// date) are dropped silently.
func Normalize(items []*calendar.Event) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		start, ok := parseEventTime(item.Start)
		if !ok {
			continue
		}
		end, ok := parseEventTime(item.End)
		if !ok {
			end = start
		}

		title := item.Summary
		if title == "" {
			title = DefaultTitle
		}

		var location *string
		if item.Location != "" {
			location = &item.Location
		}

		candidates = append(candidates, Candidate{
			GoogleEventID: item.Id,
			Title:         title,
			StartTime:     start,
			EndTime:       end,
			Location:      location,
		})
	}
	return candidates
}

// parseEventTime resolves an event boundary, preferring the timed field
// over the all-day date. An all-day date becomes midnight UTC.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return t, true
		}
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
