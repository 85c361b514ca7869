package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
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
		id = args[0]
	} else if err != nil {
		die(exitUsage, err)
	}
	res, err := editor.Delete(ctx, id)
	if err != nil {
		die(exitStorage, err)
	}
	if res.Outcome == worklog.OutcomeNotFound {
		fmt.Printf("No entry with id %q; nothing deleted.\n", id)
		return nil
	}
	fmt.Printf("Deleted %s.\n", formatter.ShortID(id))
	return nil
}

var errNoEntry = errors.New("no such entry")

// resolveID accepts a full id or a unique prefix of one.
func resolveID(c model.Collection, arg string) (string, error) {
	if _, ok := c.Get(arg); ok {
		return arg, nil
	}
	var match string
	for _, t := range c {
		if len(arg) > 0 && len(t.ID) > len(arg) && t.ID[:len(arg)] == arg {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", errNoEntry, arg)
	}
	return match, nil
}
