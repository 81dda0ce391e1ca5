package planning

import (
	"strings"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
)

// Lateness is the derived delay of a single task.
type Lateness struct {
	IsLate    bool
	DelayDays int
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseInstant parses the timestamp formats the store has been seen to
// return. Dates without a zone are read in loc.
func parseInstant(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// endOfDay returns the last instant of t's calendar day as seen in loc.
func endOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// ComputeLateness decides whether a task is late and by how many days.
// The due date counts until the end of its calendar day in now's location.
// Done tasks are measured at their completion instant, others at now.
// Missing or unparsable dates never make a task late.
func ComputeLateness(dueDate, completedAt *string, status domain.TaskStatus, now time.Time) Lateness {
	if dueDate == nil {
		return Lateness{}
	}
	loc := now.Location()
	due, ok := parseInstant(*dueDate, loc)
	if !ok {
		return Lateness{}
	}

	ref := now
	if status == domain.TaskDone {
		if completedAt == nil {
			return Lateness{}
		}
		done, ok := parseInstant(*completedAt, loc)
		if !ok {
			return Lateness{}
		}
		ref = done
	}

	deadline := endOfDay(due, loc)
	if !ref.After(deadline) {
		return Lateness{}
	}

	over := ref.Sub(deadline)
	days := int((over + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return Lateness{IsLate: true, DelayDays: days}
}
