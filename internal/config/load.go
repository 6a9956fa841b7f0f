package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := cws.loadConfigFile(userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := cws.loadConfigFile(projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, cws.Sources); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over the current config and marks
// every key it defines with source.
func (cws *ConfigWithSources) loadConfigFile(path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)

	for _, field := range configFields() {
		if md.IsDefined(field) {
			cws.Sources[field] = source
		}
	}
	for _, key := range md.Undecoded() {
		cws.Warnings = append(cws.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	if strings.TrimSpace(cfg.TaskFile) == "" {
		return fmt.Errorf("task file path is empty")
	}
	cfg.TaskFile = resolvePath(cfg.WorkDir, cfg.TaskFile)
	if cfg.SchemaFile != "" {
		cfg.SchemaFile = resolvePath(cfg.WorkDir, cfg.SchemaFile)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level %q (expected debug|info|warn|error|fatal)", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q (expected text|json|logfmt)", cfg.LogFormat)
	}

	if cfg.TUIRefresh < 0 {
		return fmt.Errorf("invalid tui refresh %s (must not be negative)", cfg.TUIRefresh)
	}

	return nil
}

// resolvePath expands ~ and environment variables and makes p absolute
// relative to workDir.
func resolvePath(workDir, p string) string {
	p = expandPath(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}
