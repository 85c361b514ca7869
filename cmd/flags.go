package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// rangeFlags selects a date range shared by list, summary and export.
type rangeFlags struct {
	today bool
	week  bool
	from  string
	to    string
}

func (r *rangeFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&r.today, "today", false, "Only today")
	fs.BoolVar(&r.week, "week", false, "Only this week (Monday to Sunday)")
	fs.StringVar(&r.from, "from", "", "First date to include (YYYY-MM-DD)")
	fs.StringVar(&r.to, "to", "", "Last date to include (YYYY-MM-DD)")
}

// bounds returns the inclusive date range, with "" meaning unbounded.
func (r rangeFlags) bounds(now time.Time) (string, string, error) {
	switch {
	case r.today:
		d := now.Format(timecalc.DateLayout)
		return d, d, nil
	case r.week:
		mon, sun := timecalc.WeekRange(now)
		return mon.Format(timecalc.DateLayout), sun.Format(timecalc.DateLayout), nil
	}
	for _, d := range []string{r.from, r.to} {
		if d == "" {
			continue
		}
		if _, err := timecalc.ParseDate(d); err != nil {
			return "", "", err
		}
	}
	if r.from != "" && r.to != "" && r.from > r.to {
		return "", "", fmt.Errorf("--from %s is after --to %s", r.from, r.to)
	}
	return r.from, r.to, nil
}

// filter returns the intervals of c whose date lies in the range.
func (r rangeFlags) filter(c model.Collection, now time.Time) (model.Collection, error) {
	from, to, err := r.bounds(now)
	if err != nil {
		return nil, err
	}
	if from == "" && to == "" {
		return c, nil
	}
	var out model.Collection
	for _, t := range c {
		if (from == "" || t.Date >= from) && (to == "" || t.Date <= to) {
			out = append(out, t)
		}
	}
	return out, nil
}
