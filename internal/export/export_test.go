package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/tasktracker/internal/task"
)

func sampleTasks() []task.Task {
	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	return []task.Task{
		{ID: 1, Description: "Buy milk", Status: task.StatusToDo, CreatedAt: created},
		{ID: 2, Description: "Write report, then \"review\" it", Status: task.StatusDone, CreatedAt: created, UpdatedAt: &updated},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{" pdf ", FormatPDF, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatJSON); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got []task.Task
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a task array: %v", err)
	}
	if len(got) != 2 || got[1].Description != sampleTasks()[1].Description {
		t.Errorf("unexpected tasks: %+v", got)
	}
	if !strings.Contains(buf.String(), `"Status": "Done"`) {
		t.Errorf("expected file-format keys, got:\n%s", buf.String())
	}
}

func TestExportJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatCSV); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if strings.Join(records[0], ",") != "id,description,status,created_at,updated_at" {
		t.Errorf("header: got %v", records[0])
	}
	want := []string{"1", "Buy milk", "to-do", "2026-10-17T09:00:00Z", ""}
	for i := range want {
		if records[1][i] != want[i] {
			t.Errorf("record 1 col %d: got %q, want %q", i, records[1][i], want[i])
		}
	}
	if records[2][1] != `Write report, then "review" it` {
		t.Errorf("quoted description: got %q", records[2][1])
	}
	if records[2][2] != "done" || records[2][4] != "2026-10-17T10:00:00Z" {
		t.Errorf("record 2: got %v", records[2])
	}
}

func TestExportPDF(t *testing.T) {
	tasks := sampleTasks()
	tasks = append(tasks, task.Task{
		ID:          3,
		Description: strings.Repeat("a very long description ", 20),
		Status:      task.StatusInProgress,
		CreatedAt:   time.Now(),
	})

	var buf bytes.Buffer
	if err := Export(&buf, tasks, FormatPDF); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestParseFormatErrorListsFormats(t *testing.T) {
	_, err := ParseFormat("xml")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "json|csv|pdf") {
		t.Errorf("error should list the formats, got %q", err)
	}
}

func TestFitTextKeepsAccentedCharacters(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	short := "café"
	if got := fitText(pdf, tr, short, 80); got != tr(short) {
		t.Errorf("short text: got %q, want %q", got, tr(short))
	}

	got := fitText(pdf, tr, "café "+strings.Repeat("é", 80), 20)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long text should be cut with an ellipsis, got %q", got)
	}
	if pdf.GetStringWidth(got) > 20 {
		t.Errorf("cut text is wider than the cell: %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if !strings.HasPrefix(body, "caf\xe9") {
		t.Errorf("cut text should start with cp1252 caf\\xe9, got %q", body)
	}
	// Everything after the first word is the cp1252 byte for é.
	for i := len("caf\xe9 "); i < len(body); i++ {
		if body[i] != 0xe9 {
			t.Fatalf("byte %d: got %#x, want 0xe9 (text %q)", i, body[i], got)
		}
	}
	if strings.Contains(got, "\uFFFD") {
		t.Errorf("cut text contains replacement characters: %q", got)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), Format("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}
