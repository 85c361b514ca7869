package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current timer status and today's hours",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	editor := e.editor(e.user(ctx))
	tm, err := e.tracker(editor).Timer(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	c, err := editor.Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}

	fmt.Println(formatter.FormatStatus(tm, now))
	today := summary.HoursOn(c, e.summaryOptions(), now.Format(timecalc.DateLayout))
	fmt.Printf("Today: %s logged, %s break.\n",
		formatter.HoursStyled(today, e.cfg.Summary.StandardHours),
		timecalc.FormatDuration(int64(today.BreakMinutes)*60))
	return nil
}
