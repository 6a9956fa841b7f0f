package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "tasks.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the error location, e.g. "[2].Description"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the built-in schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Tasks    int
}

// ValidateFile checks the task file at path against the JSON Schema and the
// invariants the schema cannot express: unique IDs and UpdatedAt strictly
// after CreatedAt. It returns an error only when the file cannot be read.
func ValidateFile(path string, opts ValidationOptions) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read task file: %w", ErrIO, err)
	}
	return ValidateBytes(data, opts), nil
}

// ValidateBytes validates an encoded task collection.
func ValidateBytes(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("%w: %w", ErrDecode, err)})
		return result
	}

	schema, warnings := compileSchema(opts.SchemaPath)
	result.Warnings = append(result.Warnings, warnings...)
	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
		}
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		result.fail(&ValidationError{Err: err})
		return result
	}
	result.Tasks = len(tasks)
	validateInvariants(result, tasks)

	return result
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// compileSchema loads the schema at schemaPath, falling back to the built-in
// schema with a warning when it is missing or invalid.
func compileSchema(schemaPath string) (*jsonschema.Schema, []string) {
	var warnings []string

	if schemaPath != "" {
		schema, err := compileSchemaFile(schemaPath)
		if err == nil {
			return schema, nil
		}
		warnings = append(warnings, fmt.Sprintf("%v, using built-in schema", err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, append(warnings, fmt.Sprintf("built-in schema unavailable: %v", err))
	}
	schema, err := compiler.Compile(embeddedSchemaURL)
	if err != nil {
		return nil, append(warnings, fmt.Sprintf("built-in schema unavailable: %v", err))
	}
	return schema, warnings
}

func compileSchemaFile(schemaPath string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

// validateInvariants checks rules that span fields or records.
func validateInvariants(result *ValidationResult, tasks []Task) {
	seen := make(map[int]int, len(tasks))
	for i, t := range tasks {
		path := fmt.Sprintf("[%d]", i)

		if t.ID <= 0 {
			result.fail(&ValidationError{Path: path + ".Id", Err: fmt.Errorf("must be positive, got %d", t.ID)})
		} else if first, ok := seen[t.ID]; ok {
			result.fail(&ValidationError{Path: path + ".Id", Err: fmt.Errorf("duplicate id %d (first at [%d])", t.ID, first)})
		} else {
			seen[t.ID] = i
		}

		if strings.TrimSpace(t.Description) == "" {
			result.fail(&ValidationError{Path: path + ".Description", Err: errors.New("must not be empty")})
		}

		if t.UpdatedAt != nil && !t.UpdatedAt.After(t.CreatedAt) {
			result.fail(&ValidationError{Path: path + ".UpdatedAt", Err: errors.New("must be after CreatedAt")})
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts "/2/Description" to "[2].Description".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
