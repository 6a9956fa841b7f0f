package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktracker/internal/logging"
)

// Store reads and writes the task collection in a single JSON file.
// Each operation loads the whole file and, when it mutates, writes the whole
// collection back.
type Store struct {
	path   string
	logger *log.Logger
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a store backed by the file at path.
// The file is not touched until the first operation.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: task file path is empty", ErrInvalidArgument)
	}

	s := &Store{
		path:   path,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized writes an empty collection if the task file does not exist.
func (s *Store) EnsureInitialized() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat task file: %w", ErrIO, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create task file dir: %w", ErrIO, err)
		}
	}
	s.logger.Debug("creating task file", "path", s.path)
	return s.save([]Task{})
}

// LoadAll returns every task in file order.
// A file that cannot be decoded yields an empty collection.
func (s *Store) LoadAll() ([]Task, error) {
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read task file: %w", ErrIO, err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		s.logger.Warn("task file is corrupt, using an empty collection", "path", s.path, "err", err)
		return []Task{}, nil
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// GetAll returns every task in file order.
func (s *Store) GetAll() ([]Task, error) {
	return s.LoadAll()
}

// GetByStatus returns the tasks with the given status in file order.
func (s *Store) GetByStatus(status Status) ([]Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	tasks, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	return Filter(tasks, status), nil
}

// Get returns the task with the given ID.
func (s *Store) Get(id int) (Task, error) {
	if err := checkID(id); err != nil {
		return Task{}, err
	}
	tasks, err := s.LoadAll()
	if err != nil {
		return Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return tasks[i], nil
}

// Add creates a task with status ToDo and returns its ID.
// The ID is one more than the highest ID in the file.
func (s *Store) Add(description string) (int, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return 0, fmt.Errorf("%w: description must not be empty", ErrInvalidArgument)
	}

	tasks, err := s.LoadAll()
	if err != nil {
		return 0, err
	}

	t := Task{
		ID:          nextID(tasks),
		Description: description,
		Status:      StatusToDo,
		CreatedAt:   s.now().UTC(),
	}
	tasks = append(tasks, t)

	if err := s.save(tasks); err != nil {
		return 0, err
	}
	s.logger.Info("task added", "id", t.ID)
	return t.ID, nil
}

// Update replaces the description of a task and sets UpdatedAt.
func (s *Store) Update(id int, description string) error {
	if err := checkID(id); err != nil {
		return err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrInvalidArgument)
	}

	return s.updateTask(id, func(t *Task) {
		t.Description = description
	})
}

// UpdateStatus sets the status of a task and sets UpdatedAt.
// Any status may follow any other.
func (s *Store) UpdateStatus(id int, status Status) error {
	if err := checkID(id); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}

	return s.updateTask(id, func(t *Task) {
		t.Status = status
	})
}

// Delete removes the task with the given ID.
// A missing ID is not an error and leaves the file untouched.
func (s *Store) Delete(id int) error {
	if err := checkID(id); err != nil {
		return err
	}

	tasks, err := s.LoadAll()
	if err != nil {
		return err
	}

	before := len(tasks)
	tasks = slices.DeleteFunc(tasks, func(t Task) bool {
		return t.ID == id
	})
	if len(tasks) == before {
		s.logger.Debug("delete: no task with id", "id", id)
		return nil
	}

	if err := s.save(tasks); err != nil {
		return err
	}
	s.logger.Info("task deleted", "id", id)
	return nil
}

// updateTask applies updater to the task with the given ID, stamps
// UpdatedAt and writes the collection back.
func (s *Store) updateTask(id int, updater func(*Task)) error {
	tasks, err := s.LoadAll()
	if err != nil {
		return err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	updater(&tasks[i])
	s.touch(&tasks[i])

	if err := s.save(tasks); err != nil {
		return err
	}
	s.logger.Info("task updated", "id", id, "status", tasks[i].Status)
	return nil
}

// touch sets UpdatedAt to now, keeping it strictly after CreatedAt.
func (s *Store) touch(t *Task) {
	now := s.now().UTC()
	if !now.After(t.CreatedAt) {
		now = t.CreatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = &now
}

// save writes the collection with 2-space indentation and a trailing newline.
func (s *Store) save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write task file: %w", ErrIO, err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func decodeTasks(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	// Records written without a Status key start out as ToDo.
	for i := range tasks {
		if tasks[i].Status == "" {
			tasks[i].Status = StatusToDo
		}
	}
	return tasks, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path. The temp file is removed on any failure.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func checkID(id int) error {
	if id < 0 {
		return fmt.Errorf("%w: id must not be negative, got %d", ErrInvalidArgument, id)
	}
	return nil
}

func indexOf(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
