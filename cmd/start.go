package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
	"github.com/Tiliavir/work-hours-logger/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:       "start [work|break]",
	Short:     "Start the timer, switching over from a running session",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(model.KindWork), string(model.KindBreak)},
	RunE:      runStart,
}

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Close the running session and start a break",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pivot(cmd, model.KindBreak)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Close the running break and resume work",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pivot(cmd, model.KindWork)
	},
}

func runStart(cmd *cobra.Command, args []string) error {
	kind := model.KindWork
	if len(args) == 1 {
		kind = model.ParseKind(args[0])
	}
	return pivot(cmd, kind)
}

// pivot starts a session of kind, closing whatever runs. Starting the kind
// that already runs leaves it untouched.
func pivot(cmd *cobra.Command, kind model.Kind) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	tr := e.tracker(e.editor(e.user(ctx)))
	before, err := tr.Timer(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	if before.Running() && before.Kind() == kind {
		fmt.Printf("%s already running since %s.\n", kind.Label(), before.StartedAt().Format(timecalc.ClockLayout))
		return nil
	}

	ch, err := tr.Pivot(ctx, kind)
	if err != nil {
		die(exitStorage, err)
	}
	reportStop(ch)
	fmt.Printf("Started %s at %s\n", strings.ToLower(kind.Label()), ch.Timer.StartedAt().Format("15:04:05"))
	return nil
}

// reportStop prints what happened to a session closed by ch.
func reportStop(ch tracker.Change) {
	res := ch.Stop
	label := strings.ToLower(res.Kind.Label())
	switch res.Outcome {
	case timer.OutcomeRecorded:
		fmt.Printf("Stopped %s. Elapsed: %s\n", label, formatElapsed(int64(res.Duration.Seconds())))
		if len(res.Records) > 1 {
			fmt.Printf("Session crossed midnight and was split into %d entries.\n", len(res.Records))
		}
		if ch.Saved != nil && len(ch.Saved.Overlaps) > 0 {
			fmt.Printf("Warning: overlaps %d existing entries.\n", len(ch.Saved.Overlaps))
		}
	case timer.OutcomeDiscarded:
		fmt.Printf("Discarded %s session shorter than %s.\n", label, ch.Timer.MinSession())
	}
}
