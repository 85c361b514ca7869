package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard with a live timer",
	Args:    cobra.NoArgs,
	RunE:    runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	if !interactive() {
		die(exitUsage, "dashboard needs a terminal.")
	}
	editor := e.editor(e.user(ctx))
	m := tui.New(e.tracker(editor), editor, tui.Options{
		Summary:     e.summaryOptions(),
		RollingDays: e.cfg.Summary.RollingDays,
		Tick:        e.cfg.Tick(),
	})
	return tui.Run(ctx, m)
}
