// Package export flattens a work log into spreadsheet-style records and
// writes them as XLSX, CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/work-hours-logger/internal/model"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"

	// SheetName is the worksheet holding the records in XLSX exports.
	SheetName = "Logs"
	// DefaultFileName is used when no output path is given for XLSX.
	DefaultFileName = "work_logs.xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Header is the column row of every export.
var Header = []string{"Date", "Start Time", "End Time", "Type"}

// Record is one exported interval. End is empty for open intervals.
type Record struct {
	Date  string `json:"date"`
	Start string `json:"startTime"`
	End   string `json:"endTime"`
	Kind  string `json:"type"`
}

func (r Record) row() []string {
	return []string{r.Date, r.Start, r.End, r.Kind}
}

// Rows returns the records of c ordered by date, then start time.
func Rows(c model.Collection) []Record {
	sorted := c.Sorted()
	out := make([]Record, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, Record{Date: t.Date, Start: t.StartTime, End: t.End(), Kind: t.Kind.Label()})
	}
	return out
}

// Write encodes records to w in format.
func Write(w io.Writer, format string, records []Record) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("%w %q: want xlsx, csv or json", ErrUnknownFormat, format)
	}
}

// WriteXLSX writes a workbook with a single "Logs" sheet.
func WriteXLSX(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, i+2, r.row()); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
		return fmt.Errorf("writing row %d: %w", n, err)
	}
	return nil
}

func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
