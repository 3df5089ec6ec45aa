package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvFile          = "TODO_FILE"
	EnvFormat        = "TODO_FORMAT"
	EnvSeparator     = "TODO_SEPARATOR"
	EnvHook          = "TODO_HOOK"
	EnvLogLevel      = "TODO_LOG_LEVEL"
	EnvLogFormat     = "TODO_LOG_FORMAT"
	EnvLogTimestamps = "TODO_LOG_TIMESTAMPS"
	EnvLogCaller     = "TODO_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvFile); v != "" {
		cfg.TodoFile = v
		set("todo_file")
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = strings.ToLower(strings.TrimSpace(v))
		set("format")
	}
	// A lone space is a valid separator, so only unset means unset.
	if v, ok := os.LookupEnv(EnvSeparator); ok && v != "" {
		cfg.Separator = v
		set("separator")
	}
	if v := os.Getenv(EnvHook); v != "" {
		cfg.HookCommand = v
		set("hook_command")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString parses the usual truthy spellings. Anything else is false.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
