package task

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "empty collection",
			content:   `[]`,
			wantValid: true,
		},
		{
			name: "valid tasks",
			content: `[
  {"Id": 1, "Description": "a", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z", "UpdatedAt": null},
  {"Id": 2, "Description": "b", "Status": 2, "CreatedAt": "2026-01-01T00:00:00Z", "UpdatedAt": "2026-01-02T00:00:00Z"}
]`,
			wantValid: true,
		},
		{
			name:      "not an array",
			content:   `{"Id": 1}`,
			wantValid: false,
		},
		{
			name:      "empty description",
			content:   `[{"Id": 1, "Description": "  ", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"}]`,
			wantValid: false,
			wantPath:  "[0].Description",
		},
		{
			name:      "zero id",
			content:   `[{"Id": 0, "Description": "a", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"}]`,
			wantValid: false,
			wantPath:  "[0].Id",
		},
		{
			name: "duplicate id",
			content: `[
  {"Id": 1, "Description": "a", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"},
  {"Id": 1, "Description": "b", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"}
]`,
			wantValid: false,
			wantPath:  "[1].Id",
		},
		{
			name:      "updated before created",
			content:   `[{"Id": 1, "Description": "a", "Status": "Done", "CreatedAt": "2026-01-02T00:00:00Z", "UpdatedAt": "2026-01-01T00:00:00Z"}]`,
			wantValid: false,
			wantPath:  "[0].UpdatedAt",
		},
		{
			name:      "unknown status",
			content:   `[{"Id": 1, "Description": "a", "Status": "Blocked", "CreatedAt": "2026-01-01T00:00:00Z"}]`,
			wantValid: false,
			wantPath:  "[0].Status",
		},
		{
			name:      "missing created at",
			content:   `[{"Id": 1, "Description": "a", "Status": "ToDo"}]`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBytes([]byte(tt.content), ValidationOptions{})
			if result.Valid != tt.wantValid {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateBytesCorruptJSON(t *testing.T) {
	result := ValidateBytes([]byte(`[{"Id": 1,`), ValidationOptions{})
	if result.Valid {
		t.Fatal("expected corrupt JSON to be invalid")
	}
	if len(result.Errors) == 0 || !errors.Is(result.Errors[0], ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", result.Errors)
	}
}

func TestValidateFileCountsTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TaskTracker.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	for _, d := range []string{"a", "b"} {
		if _, err := s.Add(d); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := s.UpdateStatus(1, StatusDone); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	result, err := ValidateFile(path, ValidationOptions{})
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("store output should validate, got %v", result.Errors)
	}
	if result.Tasks != 2 {
		t.Errorf("Tasks: got %d, want 2", result.Tasks)
	}
}

func TestValidateFileMissing(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), "missing.json"), ValidationOptions{})
	if !errors.Is(err, ErrIO) {
		t.Errorf("ValidateFile: got %v, want ErrIO", err)
	}
}

func TestValidateCustomSchema(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing schema falls back with warning", func(t *testing.T) {
		result := ValidateBytes([]byte(`[]`), ValidationOptions{SchemaPath: filepath.Join(dir, "nope.json")})
		if !result.Valid {
			t.Errorf("expected valid result, got %v", result.Errors)
		}
		if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "not found") {
			t.Errorf("expected not-found warning, got %v", result.Warnings)
		}
	})

	t.Run("custom schema is applied", func(t *testing.T) {
		schemaPath := filepath.Join(dir, "strict.schema.json")
		schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "maxItems": 1
}`
		if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		content := `[
  {"Id": 1, "Description": "a", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"},
  {"Id": 2, "Description": "b", "Status": "ToDo", "CreatedAt": "2026-01-01T00:00:00Z"}
]`
		result := ValidateBytes([]byte(content), ValidationOptions{SchemaPath: schemaPath})
		if result.Valid {
			t.Error("expected maxItems violation")
		}
		if len(result.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", result.Warnings)
		}
	})
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/2/Description", "[2].Description"},
		{"#/10/UpdatedAt", "[10].UpdatedAt"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
