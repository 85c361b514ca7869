package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

// entryFlags are the fields of a manual entry given on the command line.
type entryFlags struct {
	date, start, end, kind string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (HH:MM, empty for an open entry)")
	cmd.Flags().StringVar(&f.kind, "type", "", "work or break (default work)")
}

// apply overrides form fields with the flags the user set.
func (f entryFlags) apply(cmd *cobra.Command, form *worklog.Form) {
	if cmd.Flags().Changed("date") {
		form.Date = f.date
	}
	if cmd.Flags().Changed("start") {
		form.StartTime = f.start
	}
	if cmd.Flags().Changed("end") {
		form.EndTime = f.end
	}
	if cmd.Flags().Changed("type") {
		form.Kind = strings.ToLower(strings.TrimSpace(f.kind))
	}
}

func anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"date", "start", "end", "type"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

var (
	logFlags  entryFlags
	editFlags entryFlags
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an entry manually",
	Long: `log adds a work or break entry. Without flags on a terminal it opens
a form; otherwise --start is required. An end before the start is read as
running past midnight.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry",
	Long: `edit changes an existing entry in place, keeping its id. Flags
override single fields; without flags on a terminal a prefilled form opens.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	logFlags.register(logCmd)
	editFlags.register(editCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()
	editor := e.editor(e.user(ctx))

	now := time.Now()
	form := worklog.Form{
		Date:      now.Format(timecalc.DateLayout),
		StartTime: now.Format(timecalc.ClockLayout),
		Kind:      string(model.KindWork),
	}
	if anyChanged(cmd) || !interactive() {
		if !cmd.Flags().Changed("start") {
			die(exitUsage, "--start is required.")
		}
		logFlags.apply(cmd, &form)
	} else if err := runEntryForm("Log entry", &form); err != nil {
		die(exitUsage, err)
	}
	return submit(ctx, editor, form, "")
}

func runEdit(cmd *cobra.Command, args []string) error {
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()
	editor := e.editor(e.user(ctx))

	c, err := editor.Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	id, err := resolveID(c, args[0])
	if errors.Is(err, errNoEntry) {
		fmt.Printf("No entry with id %q; nothing changed.\n", args[0])
		return nil
	}
	if err != nil {
		die(exitUsage, err)
	}
	cur, _ := c.Get(id)
	form := worklog.FormFor(cur)

	if anyChanged(cmd) || !interactive() {
		editFlags.apply(cmd, &form)
	} else if err := runEntryForm("Edit entry "+formatter.ShortID(id), &form); err != nil {
		die(exitUsage, err)
	}
	return submit(ctx, editor, form, id)
}

func submit(ctx context.Context, editor *worklog.Editor, form worklog.Form, id string) error {
	res, err := editor.Submit(ctx, form, id)
	var fe *worklog.FormError
	if errors.As(err, &fe) {
		die(exitUsage, fe.Error())
	}
	if err != nil {
		die(exitStorage, err)
	}

	switch res.Outcome {
	case worklog.OutcomeNotFound:
		fmt.Printf("No entry with id %q; nothing changed.\n", id)
		return nil
	case worklog.OutcomeUpdated:
		fmt.Printf("Updated %s.\n", formatter.ShortID(id))
	default:
		fmt.Printf("Logged %s.\n", formatter.ShortID(res.Records[0].ID))
	}
	if len(res.Overlaps) > 0 {
		short := make([]string, len(res.Overlaps))
		for i, o := range res.Overlaps {
			short[i] = formatter.ShortID(o)
		}
		fmt.Printf("Warning: overlaps %s.\n", strings.Join(short, ", "))
	}
	return nil
}

// runEntryForm lets the user fill form interactively.
func runEntryForm(title string, form *worklog.Form) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&form.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&form.StartTime).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM, blank while still running)").
				Value(&form.EndTime).
				Validate(validateOptionalClock),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Work", string(model.KindWork)),
					huh.NewOption("Break", string(model.KindBreak)),
				).
				Value(&form.Kind),
		),
	).WithShowHelp(false).Run()
}

func validateDate(s string) error {
	_, err := timecalc.ParseDate(strings.TrimSpace(s))
	return err
}

func validateClock(s string) error {
	m, err := timecalc.ParseClock(s)
	if err != nil || m >= timecalc.MinutesPerDay {
		return fmt.Errorf("want HH:MM")
	}
	return nil
}

// validateOptionalClock also allows 24:00 as the end of the day.
func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := timecalc.ParseClock(s); err != nil {
		return fmt.Errorf("want HH:MM")
	}
	return nil
}
