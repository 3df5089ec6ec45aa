package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/utils"
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
}

// Default values.
const (
	DefaultTodoFile  = "todo.txt"
	DefaultFormat    = codec.FormatAuto
	DefaultSeparator = codec.SepComma
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Task file, relative to the project root unless absolute
	TodoFile string `toml:"todo_file"`

	// File format: auto, text, csv or jsonl
	Format string `toml:"format"`

	// Field separator for the text format: "," or " "
	Separator string `toml:"separator"`

	// Command run after every successful save
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"todo_file",
		"format",
		"separator",
		"hook_command",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.Format = DefaultFormat
	cfg.Separator = DefaultSeparator
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// Validate rejects unknown formats, separators and log settings.
func (c *Config) Validate() error {
	if _, ok := codec.CanonicalName(c.Format); !ok && c.Format != codec.FormatAuto {
		return fmt.Errorf("format: unknown value %q, must be %s or one of: %s",
			c.Format, codec.FormatAuto, strings.Join(codec.Names(), ", "))
	}
	if c.Separator != codec.SepComma && c.Separator != codec.SepSpace {
		return fmt.Errorf("separator: must be %q or %q, got %q", codec.SepComma, codec.SepSpace, c.Separator)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level: unknown value %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("log_format: unknown value %q", c.LogFormat)
	}
	return nil
}

// Serializer returns the codec for the configured format. The auto format
// picks one from the task file extension.
func (c *Config) Serializer() (codec.Serializer, error) {
	return c.SerializerFor(c.TodoFile)
}

// SerializerFor returns the codec to use for path under this config.
func (c *Config) SerializerFor(path string) (codec.Serializer, error) {
	if c.Format == codec.FormatAuto || c.Format == "" {
		return codec.ForPath(path, c.Separator)
	}
	return codec.New(c.Format, c.Separator)
}

// normalizeSeparator accepts the words "comma" and "space" as well as the
// characters themselves.
func normalizeSeparator(s string) string {
	if s == codec.SepSpace {
		return s
	}
	switch utils.NormalizeName(s) {
	case "comma", codec.SepComma:
		return codec.SepComma
	case "space":
		return codec.SepSpace
	}
	return s
}
