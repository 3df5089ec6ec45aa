package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags.

# Task file (relative to the directory todo runs in; ~ is expanded)
todo_file = "todo.txt"

# File format: auto, text, csv or jsonl
# auto picks csv for .csv, jsonl for .jsonl and text for anything else
format = "auto"

# Field separator for the text format: "," or " " (or "comma", "space")
separator = ","

# Command run after every save, as: <command> <event> <path> <count>
# hook_command = "/path/to/hook.sh"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}

// WriteExample writes ExampleConfig to path. It refuses to overwrite an
// existing file unless force is set.
func WriteExample(path string, force bool) error {
	return writeNewFile(path, []byte(ExampleConfig()), force)
}
