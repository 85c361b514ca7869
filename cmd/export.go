package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-hours-logger/internal/export"
)

var (
	exportRange  rangeFlags
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as a spreadsheet, CSV or JSON",
	Long: `export writes the entries ordered by date and start time. XLSX is
written to work_logs.xlsx unless --output is given; CSV and JSON go to
stdout by default. Use --output - to force stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportRange.register(exportCmd.Flags())
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatXLSX, "Output format: xlsx, csv, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := openEnv()
	defer e.Close()
	ctx := cmd.Context()

	c, err := e.editor(e.user(ctx)).Collection(ctx)
	if err != nil {
		die(exitStorage, err)
	}
	c, err = exportRange.filter(c, now)
	if err != nil {
		die(exitUsage, err)
	}

	path := exportOutput
	if path == "" && exportFormat == export.FormatXLSX {
		path = export.DefaultFileName
	}
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			die(exitStorage, err)
		}
		defer f.Close()
		w = f
	}

	records := export.Rows(c)
	if err := export.Write(w, exportFormat, records); err != nil {
		die(exitUsage, err)
	}
	if w != os.Stdout {
		abs, _ := filepath.Abs(path)
		fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", len(records), abs)
	}
	return nil
}
