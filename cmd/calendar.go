package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/calendar"
	"github.com/Tiliavir/work-hours-logger/internal/formatter"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show a month with the hours worked per day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func runCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now()
	month := now
	if len(args) == 1 {
		m, err := time.ParseInLocation("2006-01", args[0], time.Local)
		if err != nil {
			die(exitUsage, fmt.Sprintf("invalid month %q: want YYYY-MM", args[0]))
		}
		month = m
	}

	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	c, err := e.editor(e.user(ctx)).Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	grid := calendar.Build(c, e.summaryOptions(), month.Year(), month.Month())
	fmt.Print(formatter.FormatMonth(grid, e.cfg.Summary.StandardHours, now))
	return nil
}
