package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/timer"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the currently running timer",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	ch, err := e.tracker(e.editor(e.user(ctx))).Stop(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	if ch.Stop.Outcome == timer.OutcomeNotRunning {
		die(exitUsage, "No active timer to stop.")
	}
	reportStop(ch)
	return nil
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
