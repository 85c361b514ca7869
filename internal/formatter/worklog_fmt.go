package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/calendar"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
)

// ShortID trims an id to eight characters for tables. Legacy numeric ids
// are shown in full.
func ShortID(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}

// IntervalDuration renders the length of a closed interval, "running" for
// open ones and "?" when a time does not parse.
func IntervalDuration(t model.TimeInterval) string {
	if t.Open() {
		return "running"
	}
	m, ok := summary.Minutes(t)
	if !ok {
		return "?"
	}
	return timecalc.FormatDuration(int64(m) * 60)
}

// FormatLogs renders c ordered by date and start time. Intervals whose id is
// in overlapping are flagged.
func FormatLogs(c model.Collection, overlapping map[string]bool) string {
	if len(c) == 0 {
		return "No entries found.\n"
	}
	rows := make([][]string, 0, len(c))
	for _, t := range c.Sorted() {
		end := t.End()
		if end == "" {
			end = Dim("open")
		}
		note := ""
		if overlapping[t.ID] {
			note = Alert("overlaps")
		}
		rows = append(rows, []string{
			Dim(ShortID(t.ID)), t.Date, t.StartTime, end, KindBadge(t.Kind), IntervalDuration(t), note,
		})
	}
	return RenderTable([]string{"ID", "Date", "Start", "End", "Type", "Duration", ""}, rows)
}

// HoursStyled colors a day's hours: green when the standard day is met,
// yellow with overwork and dim when nothing was logged.
func HoursStyled(d summary.DailySummary, standard float64) string {
	text := timecalc.FormatHours(d.TotalHours)
	switch {
	case d.TotalHours == 0:
		return mutedStyle.Render(text)
	case d.OverworkHours > 0:
		return overStyle.Render(text)
	case d.TotalHours >= standard:
		return metStyle.Render(text)
	default:
		return textStyle.Render(text)
	}
}

// FormatSummary renders daily summaries with a totals line.
func FormatSummary(days []summary.DailySummary, standard float64) string {
	if len(days) == 0 {
		return "No entries found.\n"
	}
	rows := make([][]string, 0, len(days)+1)
	for _, d := range days {
		over := ""
		if d.OverworkHours > 0 {
			over = overStyle.Render("+" + timecalc.FormatHours(d.OverworkHours))
		}
		rows = append(rows, []string{
			d.Date,
			HoursStyled(d, standard),
			over,
			Dim(timecalc.FormatDuration(int64(d.BreakMinutes) * 60)),
		})
	}
	total, overwork := summary.Totals(days)
	rows = append(rows, []string{Bold("Total"), Bold(timecalc.FormatHours(total)), Bold("+" + timecalc.FormatHours(overwork)), ""})
	return RenderTable([]string{"Date", "Hours", "Overwork", "Break"}, rows)
}

// FormatStatus describes the timer at now.
func FormatStatus(tm timer.Timer, now time.Time) string {
	if !tm.Running() {
		return "No active timer."
	}
	elapsed := int64(tm.Elapsed(now).Seconds())
	return fmt.Sprintf("%s since %s  %s",
		KindBadge(tm.Kind()),
		tm.StartedAt().Format(timecalc.ClockLayout),
		Bold(timecalc.FormatDurationHHMMSS(elapsed)))
}

// FormatMonth renders a calendar month with the worked hours in each cell.
// today is highlighted when it falls in the month.
func FormatMonth(m calendar.Month, standard float64, today time.Time) string {
	const cell = 7
	var b strings.Builder
	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	b.WriteString(Header(title) + "\n")
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(Dim(pad(wd, cell)))
	}
	b.WriteString("\n")

	for _, week := range m.Weeks {
		var days, hours strings.Builder
		for _, d := range week {
			if !d.InMonth {
				days.WriteString(pad("", cell))
				hours.WriteString(pad("", cell))
				continue
			}
			num := pad(fmt.Sprintf("%d", d.Date.Day()), cell)
			if timecalc.SameDay(d.Date, today) {
				num = titleStyle.Render(num)
			}
			days.WriteString(num)
			h := ""
			if d.Logged() {
				h = strings.TrimSuffix(timecalc.FormatHours(d.Summary.TotalHours), "h")
			}
			hours.WriteString(styleHours(pad(h, cell), d.Summary, standard))
		}
		b.WriteString(days.String() + "\n" + hours.String() + "\n")
	}
	b.WriteString(fmt.Sprintf("Total: %s\n", Bold(timecalc.FormatHours(m.Total()))))
	return b.String()
}

func styleHours(text string, d summary.DailySummary, standard float64) string {
	switch {
	case d.OverworkHours > 0:
		return overStyle.Render(text)
	case d.TotalHours >= standard:
		return metStyle.Render(text)
	default:
		return mutedStyle.Render(text)
	}
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
