// Package output provides formatting and export of resize run reports.
//
// It renders per-job rows plus a run summary in several formats (ASCII
// table, JSON, CSV), making results usable both interactively and from
// scripts.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	imgresize "github.com/ysko909/img-resizer"
)

// Formatter handles formatting and exporting resize reports.
//
// Supported formats: "table" (ASCII table), "json" (JSON), "csv" (CSV).
type Formatter struct {
	format   string // "table", "json", "csv"
	noHeader bool   // Omit header row in table output
}

// NewFormatter creates a new Formatter with the specified format.
func NewFormatter(format string, noHeader bool) *Formatter {
	return &Formatter{
		format:   format,
		noHeader: noHeader,
	}
}

// jobRow is the JSON/CSV projection of a single Result.
type jobRow struct {
	Source string `json:"source"`
	Output string `json:"output,omitempty"`
	Old    string `json:"oldSize,omitempty"`
	New    string `json:"newSize,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// summary holds the run totals appended to every report.
type summary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Format converts results to the configured output format as a string.
func (f *Formatter) Format(results []*imgresize.Result) string {
	switch f.format {
	case "json":
		return f.toJSON(results)
	case "csv":
		return f.toCSV(results)
	default:
		return f.reportTable(results)
	}
}

// WriteToFile writes formatted content to the given file.
func (f *Formatter) WriteToFile(content, filename string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// reportTable renders the per-job table plus the summary footer.
func (f *Formatter) reportTable(results []*imgresize.Result) string {
	t := table.NewWriter()

	if !f.noHeader {
		t.AppendHeader(table.Row{
			"Source",
			"Output",
			"Size",
			"Frames",
			"Status",
		})
	}

	sum := summarize(results)
	for _, r := range results {
		row := rowFor(r)
		status := row.Status
		if row.Error != "" {
			status = fmt.Sprintf("%s: %s", row.Status, row.Error)
		}
		size := ""
		if row.Old != "" {
			size = fmt.Sprintf("%s -> %s", row.Old, row.New)
		}
		t.AppendRow(table.Row{
			row.Source,
			row.Output,
			size,
			row.Frames,
			status,
		})
	}
	t.AppendFooter(table.Row{
		"Total",
		"",
		"",
		"",
		fmt.Sprintf("%d OK / %d failed", sum.Succeeded, sum.Failed),
	})

	t.SetStyle(table.StyleColoredDark)
	return fmt.Sprintf("%s\n", t.Render())
}

// toJSON renders jobs and summary as indented JSON.
func (f *Formatter) toJSON(results []*imgresize.Result) string {
	payload := struct {
		Jobs    []jobRow `json:"jobs"`
		Summary summary  `json:"summary"`
	}{
		Jobs:    make([]jobRow, 0, len(results)),
		Summary: summarize(results),
	}
	for _, r := range results {
		payload.Jobs = append(payload.Jobs, rowFor(r))
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return string(b)
}

// toCSV renders one row per job with a fixed header.
func (f *Formatter) toCSV(results []*imgresize.Result) string {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Source", "Output", "OldSize", "NewSize", "Frames", "Status", "Error"})
	for _, r := range results {
		row := rowFor(r)
		writer.Write([]string{
			row.Source,
			row.Output,
			row.Old,
			row.New,
			fmt.Sprintf("%d", row.Frames),
			row.Status,
			row.Error,
		})
	}

	writer.Flush()
	return buf.String()
}

// rowFor projects a Result into the report row shape.
func rowFor(r *imgresize.Result) jobRow {
	row := jobRow{
		Source: r.SourcePath,
		Frames: r.Frames,
		Status: "OK",
	}
	if r.OutputPath != "" {
		row.Output = filepath.Base(r.OutputPath)
	}
	if r.OldWidth > 0 {
		row.Old = fmt.Sprintf("%dx%d", r.OldWidth, r.OldHeight)
		row.New = fmt.Sprintf("%dx%d", r.NewWidth, r.NewHeight)
	}
	if r.Failed() {
		row.Status = "FAILED"
		row.Error = r.Err.Error()
	}
	return row
}

// summarize computes run totals.
func summarize(results []*imgresize.Result) summary {
	sum := summary{Processed: len(results)}
	for _, r := range results {
		if r.Failed() {
			sum.Failed++
		} else {
			sum.Succeeded++
		}
	}
	return sum
}
