// Package export renders a task collection as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/tasktracker/internal/task"
)

// Format is an export output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatPDF}
}

// formatList joins the supported format names with "|".
func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (expected %s)", s, formatList())
}

// Export writes tasks to w in the given format.
func Export(w io.Writer, tasks []task.Task, format Format) error {
	switch format {
	case FormatJSON:
		return exportJSON(w, tasks)
	case FormatCSV:
		return exportCSV(w, tasks)
	case FormatPDF:
		return exportPDF(w, tasks)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func exportJSON(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

var csvHeader = []string{"id", "description", "status", "created_at", "updated_at"}

func exportCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		record := []string{
			strconv.Itoa(t.ID),
			t.Description,
			t.Status.Token(),
			formatTime(t.CreatedAt),
			formatOptionalTime(t.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// pdfColumn is a table column in the PDF report; widths are in mm.
type pdfColumn struct {
	title string
	width float64
	value func(task.Task) string
}

var pdfColumns = []pdfColumn{
	{"Id", 12, func(t task.Task) string { return strconv.Itoa(t.ID) }},
	{"Description", 88, func(t task.Task) string { return t.Description }},
	{"Status", 24, func(t task.Task) string { return t.Status.Token() }},
	{"Created", 33, func(t task.Task) string { return t.CreatedAt.Local().Format("2006-01-02 15:04") }},
	{"Updated", 33, func(t task.Task) string {
		if t.UpdatedAt == nil {
			return "-"
		}
		return t.UpdatedAt.Local().Format("2006-01-02 15:04")
	}},
}

func exportPDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task Report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("%d tasks, generated %s", len(tasks), time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		for _, col := range pdfColumns {
			text := fitText(pdf, tr, col.value(t), col.width-2)
			pdf.CellFormat(col.width, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// fitText translates s for the core fonts with tr, shortening it with an
// ellipsis until it fits within width. s is cut on rune boundaries before
// translation so multi-byte characters stay intact.
func fitText(pdf *gofpdf.Fpdf, tr func(string) string, s string, width float64) string {
	text := tr(s)
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
