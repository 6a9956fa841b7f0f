package task

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		token   string
		want    Status
		wantErr bool
	}{
		{"to-do", StatusToDo, false},
		{"todo", StatusToDo, false},
		{"in-progress", StatusInProgress, false},
		{" In-Progress ", StatusInProgress, false},
		{"done", StatusDone, false},
		{"DONE", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseStatus(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseStatus(%q): got error %v, want ErrInvalidArgument", tt.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) failed: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q): got %s, want %s", tt.token, got, tt.want)
			}
		})
	}
}

func TestStatusTokenRoundTrip(t *testing.T) {
	for _, status := range Statuses() {
		got, err := ParseStatus(status.Token())
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", status.Token(), err)
		}
		if got != status {
			t.Errorf("ParseStatus(%q): got %s, want %s", status.Token(), got, status)
		}
	}
}

func TestStatusUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{`"ToDo"`, StatusToDo, false},
		{`"InProgress"`, StatusInProgress, false},
		{`"Done"`, StatusDone, false},
		{`0`, StatusToDo, false},
		{`1`, StatusInProgress, false},
		{`2`, StatusDone, false},
		{`null`, StatusToDo, false},
		{`3`, "", true},
		{`-1`, "", true},
		{`"todo"`, "", true},
		{`true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Status
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%s): got %s, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s): got %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTaskJSONEncoding(t *testing.T) {
	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	task := Task{ID: 3, Description: "ship it", Status: StatusInProgress, CreatedAt: created}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"Id":3,"Description":"ship it","Status":"InProgress","CreatedAt":"2026-10-17T09:00:00Z","UpdatedAt":null}`
	if string(data) != want {
		t.Errorf("Marshal:\n got %s\nwant %s", data, want)
	}

	updated := created.Add(time.Hour)
	task.UpdatedAt = &updated
	data, err = json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"UpdatedAt":"2026-10-17T10:00:00Z"`) {
		t.Errorf("Marshal: UpdatedAt missing in %s", data)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"empty", nil, 1},
		{"single", []int{1}, 2},
		{"gaps", []int{1, 3, 7}, 8},
		{"unordered", []int{5, 2, 9, 4}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]Task, 0, len(tt.ids))
			for _, id := range tt.ids {
				tasks = append(tasks, Task{ID: id})
			}
			if got := nextID(tasks); got != tt.want {
				t.Errorf("nextID(%v): got %d, want %d", tt.ids, got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: 4, Status: StatusDone},
		{ID: 1, Status: StatusToDo},
		{ID: 9, Status: StatusDone},
		{ID: 2, Status: StatusDone},
	}
	got := Filter(tasks, StatusDone)
	if len(got) != 3 {
		t.Fatalf("Filter: got %d tasks, want 3", len(got))
	}
	for i, want := range []int{4, 9, 2} {
		if got[i].ID != want {
			t.Errorf("Filter[%d]: got ID %d, want %d", i, got[i].ID, want)
		}
	}
	if empty := Filter(nil, StatusToDo); empty == nil || len(empty) != 0 {
		t.Errorf("Filter(nil): got %#v, want empty slice", empty)
	}
}
