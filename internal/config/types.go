package config

import (
	"strconv"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings holds non-fatal problems such as unknown keys in a config file.
	Warnings []string
}

// Default values.
const (
	DefaultTaskFile  = "TaskTracker.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	// DefaultTUIRefresh is how often the task board reloads the file.
	DefaultTUIRefresh = 2 * time.Second
)

// Config holds the full configuration for tasktracker.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"` // optional JSON Schema override for doctor

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Task board reload interval; 0 disables periodic reloads
	TUIRefresh time.Duration `toml:"tui_refresh"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"schema_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"tui_refresh",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the string form of a configurable field.
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "schema_file":
		return c.SchemaFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	case "tui_refresh":
		return c.TUIRefresh.String()
	}
	return ""
}
