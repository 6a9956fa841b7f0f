package config

import (
	"flag"
)

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"file":           "task_file",
	"schema":         "schema_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"tui-refresh":    "tui_refresh",
}

// parseFlags defines the global flags on fs, parses args and records which
// fields were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Path flags
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to JSON Schema for doctor (built-in when empty)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	// Task board
	fs.DurationVar(&cfg.TUIRefresh, "tui-refresh", cfg.TUIRefresh, "Task board reload interval (0 disables)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
