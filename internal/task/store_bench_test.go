package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBenchFile(b *testing.B, n int) string {
	b.Helper()
	statuses := []string{"ToDo", "InProgress", "Done"}
	records := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, fmt.Sprintf(
			`{"Id": %d, "Description": "Task %d", "Status": "%s", "CreatedAt": "2026-01-01T00:00:00Z", "UpdatedAt": null}`,
			i, i, statuses[i%3]))
	}

	path := filepath.Join(b.TempDir(), "TaskTracker.json")
	content := "[" + strings.Join(records, ",") + "]"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// BenchmarkLoadAll benchmarks loading a 100-task file.
func BenchmarkLoadAll(b *testing.B) {
	s, err := NewStore(writeBenchFile(b, 100))
	if err != nil {
		b.Fatalf("NewStore failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.LoadAll(); err != nil {
			b.Fatalf("LoadAll failed: %v", err)
		}
	}
}

// BenchmarkGetByStatus benchmarks filtering a 1000-task file.
func BenchmarkGetByStatus(b *testing.B) {
	s, err := NewStore(writeBenchFile(b, 1000))
	if err != nil {
		b.Fatalf("NewStore failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.GetByStatus(StatusInProgress); err != nil {
			b.Fatalf("GetByStatus failed: %v", err)
		}
	}
}

// BenchmarkUpdateStatus benchmarks a full read-modify-write cycle.
func BenchmarkUpdateStatus(b *testing.B) {
	s, err := NewStore(writeBenchFile(b, 100))
	if err != nil {
		b.Fatalf("NewStore failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		status := Statuses()[i%3]
		if err := s.UpdateStatus(50, status); err != nil {
			b.Fatalf("UpdateStatus failed: %v", err)
		}
	}
}
