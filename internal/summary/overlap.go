package summary

import (
	"sort"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// Overlap names two intervals on the same date whose spans intersect.
type Overlap struct {
	A, B string
}

type span struct {
	id         string
	start, end int
}

func spanOf(t model.TimeInterval) (span, bool) {
	m, ok := Minutes(t)
	if !ok || m == 0 {
		return span{}, false
	}
	s, _ := timecalc.ParseClock(t.StartTime)
	return span{id: t.ID, start: s, end: s + m}, true
}

// Overlaps reports every pair of closed intervals that share a date and
// intersect, regardless of kind. Touching intervals (one ends when the
// next starts) do not overlap. Overlaps are tolerated; this is informational.
func Overlaps(c model.Collection) []Overlap {
	byDate := map[string][]span{}
	var dates []string
	for _, t := range c {
		sp, ok := spanOf(t)
		if !ok {
			continue
		}
		if _, seen := byDate[t.Date]; !seen {
			dates = append(dates, t.Date)
		}
		byDate[t.Date] = append(byDate[t.Date], sp)
	}
	sort.Strings(dates)

	var out []Overlap
	for _, d := range dates {
		spans := byDate[d]
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
					out = append(out, Overlap{A: spans[i].id, B: spans[j].id})
				}
			}
		}
	}
	return out
}

// OverlapsWith returns the ids of intervals overlapping the one with id.
func OverlapsWith(c model.Collection, id string) []string {
	var ids []string
	for _, o := range Overlaps(c) {
		switch id {
		case o.A:
			ids = append(ids, o.B)
		case o.B:
			ids = append(ids, o.A)
		}
	}
	return ids
}
