package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todo-go/internal/task"
)

const (
	markerDone = "X"
	markerOpen = " "
	// legacyMarkerOpen is what older files wrote for open tasks. It is read
	// but never written.
	legacyMarkerOpen = "False"
)

// Text is the plain delimited format:
//
//	<X or space><sep><description><sep><priority or None><sep><deadline or None>
type Text struct {
	sep string
}

// NewText returns a text serializer using sep, which must be a comma or a
// single space. Empty means comma.
func NewText(sep string) (*Text, error) {
	if sep == "" {
		sep = SepComma
	}
	if sep != SepComma && sep != SepSpace {
		return nil, fmt.Errorf("unsupported separator %q, must be %q or %q", sep, SepComma, SepSpace)
	}
	return &Text{sep: sep}, nil
}

// Name returns "text".
func (t *Text) Name() string { return FormatText }

// Extension returns ".txt".
func (t *Text) Extension() string { return ".txt" }

// Header returns "" since the text format has no header row.
func (t *Text) Header() string { return "" }

// Separator returns the field separator.
func (t *Text) Separator() string { return t.sep }

// Encode writes one line per task.
func (t *Text) Encode(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for i, tk := range tasks {
		if err := checkSingleLine(tk); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		marker := markerOpen
		if tk.Done {
			marker = markerDone
		}
		line := strings.Join([]string{marker, tk.Description, priorityField(tk.Priority), tk.DeadlineString()}, t.sep)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses one line. The marker is read from the front and the priority
// and deadline from the back, so the description may contain the separator.
func (t *Text) Decode(line string) (task.Task, error) {
	line = strings.TrimRight(line, "\r\n")

	var done bool
	var rest string
	switch {
	case strings.HasPrefix(line, markerDone+t.sep):
		done = true
		rest = line[len(markerDone)+len(t.sep):]
	case strings.HasPrefix(line, markerOpen+t.sep):
		rest = line[len(markerOpen)+len(t.sep):]
	case strings.HasPrefix(line, legacyMarkerOpen+t.sep):
		rest = line[len(legacyMarkerOpen)+len(t.sep):]
	default:
		return task.Task{}, &MalformedLineError{Reason: "unknown completion marker"}
	}

	i := strings.LastIndex(rest, t.sep)
	if i < 0 {
		return task.Task{}, &MalformedLineError{Reason: "expected 4 fields"}
	}
	deadline := rest[i+len(t.sep):]
	rest = rest[:i]

	j := strings.LastIndex(rest, t.sep)
	if j < 0 {
		return task.Task{}, &MalformedLineError{Reason: "expected 4 fields"}
	}
	priority := rest[j+len(t.sep):]
	description := rest[:j]

	return buildTask(done, description, priority, deadline)
}
