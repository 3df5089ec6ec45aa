package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	FlagFile          = "file"
	FlagFormat        = "format"
	FlagSeparator     = "separator"
	FlagHook          = "hook"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagLogTimestamps = "log-timestamps"
	FlagLogCaller     = "log-caller"
)

// flagToField maps flag names to config field names.
var flagToField = map[string]string{
	FlagFile:          "todo_file",
	FlagFormat:        "format",
	FlagSeparator:     "separator",
	FlagHook:          "hook_command",
	FlagLogLevel:      "log_level",
	FlagLogFormat:     "log_format",
	FlagLogTimestamps: "log_timestamps",
	FlagLogCaller:     "log_caller",
}

// BindFlags registers the configuration flags on fs. Defaults shown in help
// are the built-in defaults; only flags the user sets override other sources.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagFile, "f", DefaultTodoFile, "Path to task file")
	fs.String(FlagFormat, DefaultFormat, "File format: auto, text, csv or jsonl")
	fs.String(FlagSeparator, DefaultSeparator, `Text format separator: "," or " " (also comma, space)`)
	fs.String(FlagHook, "", "Command to run after each save")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format: text, json or logfmt")
	fs.Bool(FlagLogTimestamps, false, "Include timestamps in log output")
	fs.Bool(FlagLogCaller, false, "Include caller location in log output")
}

// applyFlags copies explicitly set flags into cfg. Flags that were not
// registered on fs are ignored.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	var firstErr error
	fs.Visit(func(f *pflag.Flag) {
		field, ok := flagToField[f.Name]
		if !ok || firstErr != nil {
			return
		}

		var err error
		switch f.Name {
		case FlagFile:
			cfg.TodoFile, err = fs.GetString(f.Name)
		case FlagFormat:
			cfg.Format, err = fs.GetString(f.Name)
		case FlagSeparator:
			cfg.Separator, err = fs.GetString(f.Name)
		case FlagHook:
			cfg.HookCommand, err = fs.GetString(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		case FlagLogTimestamps:
			cfg.LogTimestamps, err = fs.GetBool(f.Name)
		case FlagLogCaller:
			cfg.LogCaller, err = fs.GetBool(f.Name)
		}
		if err != nil {
			firstErr = err
			return
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})
	return firstErr
}
