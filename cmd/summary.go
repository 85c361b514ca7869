package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
)

var (
	summaryRange  rangeFlags
	summaryDays   int
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show worked hours per day against the standard day",
	Long: `summary lists the most recent days with logged time (14 by default)
with total hours and overwork above the standard day. Range flags select
dates instead.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryRange.register(summaryCmd.Flags())
	summaryCmd.Flags().IntVar(&summaryDays, "days", 0, "Number of most recent days (default summary.rolling_days)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "table", "Output format: table, json")
}

// summaryRow is the JSON form of a day.
type summaryRow struct {
	Date          string  `json:"date"`
	TotalHours    float64 `json:"totalHours"`
	OverworkHours float64 `json:"overworkHours"`
	BreakMinutes  int     `json:"breakMinutes"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	c, err := e.editor(e.user(ctx)).Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	c, err = summaryRange.filter(c, now)
	if err != nil {
		die(exitUsage, err)
	}

	n := summaryDays
	if n <= 0 {
		n = e.cfg.Summary.RollingDays
	}
	days := summary.Rolling(c, e.summaryOptions(), n)

	switch summaryFormat {
	case "json":
		rows := make([]summaryRow, len(days))
		for i, d := range days {
			rows[i] = summaryRow{Date: d.Date, TotalHours: d.TotalHours, OverworkHours: d.OverworkHours, BreakMinutes: d.BreakMinutes}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			die(exitStorage, "error encoding JSON:", err)
		}
		fmt.Println(string(data))
	case "table":
		fmt.Print(formatter.FormatSummary(days, e.cfg.Summary.StandardHours))
	default:
		die(exitUsage, fmt.Sprintf("unknown format %q: want table or json", summaryFormat))
	}
	return nil
}
