package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Token returns the command-line token for the status.
func (s Status) Token() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusDone:
		return "done"
	default:
		return "to-do"
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a command-line token to a Status.
// Accepts to-do, in-progress and done, plus the canonical names.
func ParseStatus(token string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "to-do", "todo", "to_do":
		return StatusToDo, nil
	case "in-progress", "inprogress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q (expected to-do|in-progress|done)", ErrInvalidArgument, token)
	}
}

// UnmarshalJSON accepts the string form and the legacy numeric form (0, 1, 2).
// null decodes as ToDo, the zero value of the legacy form.
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = StatusToDo
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		statuses := Statuses()
		if n < 0 || n >= len(statuses) {
			return fmt.Errorf("unknown status %d", n)
		}
		*s = statuses[n]
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("status must be a string or number: %w", err)
	}
	parsed := Status(str)
	if !parsed.Valid() {
		return fmt.Errorf("unknown status %q", str)
	}
	*s = parsed
	return nil
}

// Task is a single entry in the task file.
type Task struct {
	ID          int        `json:"Id"`
	Description string     `json:"Description"`
	Status      Status     `json:"Status"`
	CreatedAt   time.Time  `json:"CreatedAt"`
	UpdatedAt   *time.Time `json:"UpdatedAt"`
}

// Filter returns the tasks matching status, preserving order.
func Filter(tasks []Task, status Status) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// nextID returns one more than the highest ID in tasks, or 1 when empty.
func nextID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}
