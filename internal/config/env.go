package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// loadFromEnv overrides config from TASKTRACKER_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKTRACKER_FILE"); v != "" {
		cfg.TaskFile = v
		setEnv("task_file")
	}
	if v := os.Getenv("TASKTRACKER_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		setEnv("schema_file")
	}

	// Logging configuration
	if v := os.Getenv("TASKTRACKER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKTRACKER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKTRACKER_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKTRACKER_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}

	if v := os.Getenv("TASKTRACKER_TUI_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TASKTRACKER_TUI_REFRESH: %w", err)
		}
		cfg.TUIRefresh = d
		setEnv("tui_refresh")
	}
	return nil
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
