// Package codec reads and writes task records in line-oriented file formats.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nibzard/todo-go/internal/task"
)

// Format names accepted by New.
const (
	FormatText  = "text"
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	// FormatAuto picks the format from the file extension.
	FormatAuto = "auto"
)

// Field separators accepted by the text format.
const (
	SepComma = ","
	SepSpace = " "
)

// Serializer encodes a task list and decodes it back one line at a time.
type Serializer interface {
	// Name returns the format name.
	Name() string
	// Extension returns the preferred file extension, including the dot.
	Extension() string
	// Header returns the header row, or "" if the format has none.
	Header() string
	// Encode writes every task, plus the header row if any, to w.
	Encode(w io.Writer, tasks []task.Task) error
	// Decode parses a single data line. Bad input yields a *MalformedLineError.
	Decode(line string) (task.Task, error)
}

// MalformedLineError reports a line that could not be turned into a task.
type MalformedLineError struct {
	Reason string
	Err    error
}

func (e *MalformedLineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed line: %s: %v", e.Reason, e.Err)
	}
	return "malformed line: " + e.Reason
}

// Unwrap returns the underlying error.
func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// New returns the serializer for format. sep only applies to the text format;
// an empty sep means comma.
func New(format, sep string) (Serializer, error) {
	name, ok := CanonicalName(format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q, must be one of: %s", format, strings.Join(Names(), ", "))
	}
	switch name {
	case FormatCSV:
		return NewCSV(), nil
	case FormatJSONL:
		return NewJSONLines()
	default:
		return NewText(sep)
	}
}

// CanonicalName maps a format name or alias to one of Names. The empty
// string means text.
func CanonicalName(format string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText, "txt":
		return FormatText, true
	case FormatCSV:
		return FormatCSV, true
	case FormatJSONL, "jsonlines", "ndjson":
		return FormatJSONL, true
	default:
		return "", false
	}
}

// ForPath picks a serializer from the extension of path. Unknown extensions
// fall back to the text format.
func ForPath(path, sep string) (Serializer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return New(FormatCSV, sep)
	case ".jsonl", ".ndjson":
		return New(FormatJSONL, sep)
	default:
		return New(FormatText, sep)
	}
}

// Names lists the supported format names.
func Names() []string {
	return []string{FormatText, FormatCSV, FormatJSONL}
}

// buildTask assembles a decoded task and applies the same rules the manager
// applies on insertion.
func buildTask(done bool, description, priority, deadline string) (task.Task, error) {
	if description == "" {
		return task.Task{}, &MalformedLineError{Reason: "empty description"}
	}
	if priority == "" {
		return task.Task{}, &MalformedLineError{Reason: "missing priority field"}
	}
	if deadline == "" {
		return task.Task{}, &MalformedLineError{Reason: "missing deadline field"}
	}

	p, err := task.ParsePriority(priority)
	if err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad priority", Err: err}
	}
	d, err := task.ParseDate(deadline)
	if err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad deadline", Err: err}
	}

	t, err := task.New(description, done, p, d)
	if err != nil {
		return task.Task{}, &MalformedLineError{Reason: "invalid task", Err: err}
	}
	return t, nil
}

// checkSingleLine rejects descriptions that would split a record in two.
func checkSingleLine(t task.Task) error {
	if strings.ContainsAny(t.Description, "\r\n") {
		return &task.ValidationError{
			Field: "description",
			Err:   fmt.Errorf("line breaks cannot be stored in a line-based file: %q", t.Description),
		}
	}
	return nil
}

// checkUTF8 rejects descriptions that JSON cannot carry byte for byte.
func checkUTF8(t task.Task) error {
	if !utf8.ValidString(t.Description) {
		return &task.ValidationError{
			Field: "description",
			Err:   fmt.Errorf("not valid UTF-8: %q", t.Description),
		}
	}
	return nil
}

func priorityField(p task.Priority) string {
	if !p.IsSet() {
		return task.NoneLabel
	}
	return fmt.Sprintf("%d", int(p))
}
