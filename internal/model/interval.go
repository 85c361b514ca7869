package model

import (
	"sort"

	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// Kind tags an interval as work or break time.
type Kind string

const (
	KindWork  Kind = "work"
	KindBreak Kind = "break"
)

// ParseKind maps a stored or typed kind to a Kind. Anything unrecognised,
// including the empty string, is treated as work.
func ParseKind(s string) Kind {
	switch s {
	case "break", "Break", "BREAK":
		return KindBreak
	default:
		return KindWork
	}
}

// Label returns the human-readable label used in exports and tables.
func (k Kind) Label() string {
	if k == KindBreak {
		return "Break"
	}
	return "Work"
}

// Other returns the opposite kind.
func (k Kind) Other() Kind {
	if k == KindBreak {
		return KindWork
	}
	return KindBreak
}

// TimeInterval is a single logged span of activity. Date is YYYY-MM-DD,
// StartTime and EndTime are HH:MM wall-clock times. A nil EndTime marks an
// open interval.
type TimeInterval struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Kind      Kind    `json:"type"`
}

// Open reports whether the interval has no end time yet.
func (t TimeInterval) Open() bool {
	return t.EndTime == nil
}

// End returns the end time or "" for open intervals.
func (t TimeInterval) End() string {
	if t.EndTime == nil {
		return ""
	}
	return *t.EndTime
}

// Clock returns a pointer to s, or nil when s is empty. It is the usual way
// to fill EndTime from form input.
func Clock(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Collection holds all intervals of one user in insertion order. IDs are
// unique within a collection.
type Collection []TimeInterval

// Index returns the position of the interval with the given id, or -1.
func (c Collection) Index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the interval with the given id.
func (c Collection) Get(id string) (TimeInterval, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return TimeInterval{}, false
}

// Clone returns a deep copy so callers can mutate the result freely.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, t := range c {
		if t.EndTime != nil {
			end := *t.EndTime
			t.EndTime = &end
		}
		out[i] = t
	}
	return out
}

// OnDate returns the intervals attributed to date, in collection order.
func (c Collection) OnDate(date string) Collection {
	var out Collection
	for _, t := range c {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// Sorted returns a deep copy of c ordered by date, then start time. Start
// times that do not parse sort after all valid ones.
func (c Collection) Sorted() Collection {
	out := c.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return clockKey(out[i].StartTime) < clockKey(out[j].StartTime)
	})
	return out
}

func clockKey(s string) int {
	m, err := timecalc.ParseClock(s)
	if err != nil {
		return timecalc.MinutesPerDay + 1
	}
	return m
}
