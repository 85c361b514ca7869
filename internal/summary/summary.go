// Package summary derives per-day work totals from a collection of
// intervals. Every function here is pure.
package summary

import (
	"math"
	"sort"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

const (
	// DefaultStandardHours is the standard working day.
	DefaultStandardHours = 8.0
	// DefaultRollingDays is the length of the rolling summary view.
	DefaultRollingDays = 14
)

// Options tunes aggregation. The zero value uses the defaults.
type Options struct {
	StandardHours float64
}

func (o Options) standard() float64 {
	if o.StandardHours <= 0 {
		return DefaultStandardHours
	}
	return o.StandardHours
}

// DailySummary is the derived total for one date.
type DailySummary struct {
	Date          string
	TotalHours    float64
	OverworkHours float64
	WorkMinutes   int
	// BreakMinutes is tracked separately and never counted in TotalHours.
	BreakMinutes int
}

// Minutes returns the length of a closed interval. ok is false for open
// intervals and for clock times that do not parse.
func Minutes(t model.TimeInterval) (int, bool) {
	if t.EndTime == nil {
		return 0, false
	}
	m, err := timecalc.SpanMinutes(t.StartTime, *t.EndTime)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Aggregate groups c by date and returns one summary per date, most recent
// first. Dates holding only breaks or open intervals appear with zero hours.
func Aggregate(c model.Collection, opts Options) []DailySummary {
	byDate := map[string]*DailySummary{}
	for _, t := range c {
		d, ok := byDate[t.Date]
		if !ok {
			d = &DailySummary{Date: t.Date}
			byDate[t.Date] = d
		}
		m, ok := Minutes(t)
		if !ok {
			continue
		}
		if t.Kind == model.KindBreak {
			d.BreakMinutes += m
		} else {
			d.WorkMinutes += m
		}
	}

	out := make([]DailySummary, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, finish(*d, opts))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func finish(d DailySummary, opts Options) DailySummary {
	d.TotalHours = timecalc.RoundHours(float64(d.WorkMinutes) / 60)
	d.OverworkHours = timecalc.RoundHours(math.Max(0, d.TotalHours-opts.standard()))
	return d
}

// Rolling returns the n most recent daily summaries (DefaultRollingDays when
// n <= 0).
func Rolling(c model.Collection, opts Options, n int) []DailySummary {
	if n <= 0 {
		n = DefaultRollingDays
	}
	all := Aggregate(c, opts)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// HoursOn returns the summary for a single date. Dates without intervals
// yield a zero summary.
func HoursOn(c model.Collection, opts Options, date string) DailySummary {
	if days := Aggregate(c.OnDate(date), opts); len(days) > 0 {
		return days[0]
	}
	return DailySummary{Date: date}
}

// Totals sums a set of daily summaries.
func Totals(days []DailySummary) (total, overwork float64) {
	for _, d := range days {
		total += d.TotalHours
		overwork += d.OverworkHours
	}
	return timecalc.RoundHours(total), timecalc.RoundHours(overwork)
}
