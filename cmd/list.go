package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
)

var listRange rangeFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries with their ids",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listRange.register(listCmd.Flags())
}

func runList(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	c, err := e.editor(e.user(ctx)).Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	overlapping := map[string]bool{}
	for _, o := range summary.Overlaps(c) {
		overlapping[o.A], overlapping[o.B] = true, true
	}
	shown, err := listRange.filter(c, now)
	if err != nil {
		die(exitUsage, err)
	}
	fmt.Print(formatter.FormatLogs(shown, overlapping))
	return nil
}
