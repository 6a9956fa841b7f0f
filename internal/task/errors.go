package task

import "errors"

var (
	// ErrInvalidArgument is returned for empty descriptions, negative IDs
	// and unknown statuses.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when Update or UpdateStatus cannot find the ID.
	ErrNotFound = errors.New("task not found")
	// ErrDecode marks a task file that is not valid JSON for the task model.
	// LoadAll recovers from it; validation reports it.
	ErrDecode = errors.New("decode task file")
	// ErrIO wraps failures to read or write the task file.
	ErrIO = errors.New("task file I/O")
)
