// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tasktracker/tasktracker.toml or the OS config directory)
// 3. Project config file (tasktracker.toml or .tasktracker.toml in the working directory)
// 4. Environment variables (TASKTRACKER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tasktracker/tasktracker.toml (preferred)
// - Linux/BSD: $XDG_CONFIG_HOME/tasktracker/tasktracker.toml or ~/.config/tasktracker/tasktracker.toml
// - macOS: ~/Library/Application Support/tasktracker/tasktracker.toml
// - Windows: %AppData%\tasktracker\tasktracker.toml
package config
