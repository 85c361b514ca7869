// Package calendar lays a work log out as a month grid with weeks starting
// on Monday.
package calendar

import (
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// Day is one cell of the grid. Days of the neighbouring months that pad the
// first and last week have InMonth false and an empty Summary.
type Day struct {
	Date    time.Time
	InMonth bool
	Summary summary.DailySummary
}

// Logged reports whether any work was recorded on the day.
func (d Day) Logged() bool { return d.Summary.WorkMinutes > 0 }

// Month is a calendar month of Monday-first weeks.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]Day
}

// HoursOn returns the worked hours on date.
func HoursOn(c model.Collection, opts summary.Options, date string) float64 {
	return summary.HoursOn(c, opts, date).TotalHours
}

// Build returns the grid for year and month.
func Build(c model.Collection, opts summary.Options, year int, month time.Month) Month {
	byDate := map[string]summary.DailySummary{}
	for _, d := range summary.Aggregate(c, opts) {
		byDate[d.Date] = d
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monday, _ := timecalc.WeekRange(first)

	m := Month{Year: year, Month: month}
	for day := monday; ; {
		var week [7]Day
		for i := range week {
			cell := Day{Date: day, InMonth: day.Month() == month}
			if cell.InMonth {
				key := day.Format(timecalc.DateLayout)
				cell.Summary = summary.DailySummary{Date: key}
				if s, ok := byDate[key]; ok {
					cell.Summary = s
				}
			}
			week[i] = cell
			day = day.AddDate(0, 0, 1)
		}
		m.Weeks = append(m.Weeks, week)
		if day.Month() != month {
			return m
		}
	}
}

// Total returns the hours worked in the month.
func (m Month) Total() float64 {
	var days []summary.DailySummary
	for _, w := range m.Weeks {
		for _, d := range w {
			if d.InMonth {
				days = append(days, d.Summary)
			}
		}
	}
	total, _ := summary.Totals(days)
	return total
}
