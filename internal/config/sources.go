package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "tasktracker"
	configFileName = appName + ".toml"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{configFileName, "." + configFileName} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tasktracker/tasktracker.toml first, then the OS config directory.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "."+appName, configFileName))
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(cfgDir, appName, configFileName))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.SchemaFile = ""
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.TUIRefresh = DefaultTUIRefresh
}

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasktracker configuration file
# Values can be overridden by TASKTRACKER_* environment variables or CLI flags.

# Task file (relative paths resolve against the working directory;
# supports ~ and $VAR expansion)
task_file = "TaskTracker.json"

# JSON Schema used by "tasktracker doctor" (built-in schema when empty)
# schema_file = "tasks.schema.json"

# Logging: debug, info, warn, error, fatal
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = false
log_caller = false

# How often "tasktracker tui" reloads the task file ("0s" disables)
tui_refresh = "2s"
`
}
