// Package tasklist manages an ordered, persistent list of tasks.
package tasklist

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/task"
)

// NoTasksMessage is what ListTasks returns for an empty list.
const NoTasksMessage = "No tasks in the to-do list."

// listHeader starts every non-empty listing.
const listHeader = "To-Do List:\n"

// maxLineSize bounds a single record when loading.
const maxLineSize = 1024 * 1024

// Diagnostic describes a line that was skipped while loading.
type Diagnostic struct {
	Path string
	Line int    // 1-based line number
	Text string // raw line content
	Err  error
}

// DiagnosticFunc receives one Diagnostic per skipped line.
type DiagnosticFunc func(Diagnostic)

// Option configures a Manager.
type Option func(*Manager)

// WithSerializer sets the file format used by SaveToFile and LoadFromFile.
func WithSerializer(s codec.Serializer) Option {
	return func(m *Manager) {
		if s != nil {
			m.serializer = s
		}
	}
}

// WithDiagnostics replaces the default sink for skipped lines.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(m *Manager) {
		m.diagnose = fn
	}
}

// WithLogger sets the logger used by the default diagnostics sink.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTasks seeds the list. Tasks are copied as given, without validation.
func WithTasks(tasks ...task.Task) Option {
	return func(m *Manager) {
		m.tasks = append([]task.Task(nil), tasks...)
	}
}

// Stats summarizes the list.
type Stats struct {
	Total   int
	Done    int
	Open    int
	Overdue int
}

// Manager owns an ordered list of tasks. Positions are 1-based at the API.
// All methods are safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	tasks      []task.Task
	serializer codec.Serializer
	logger     *log.Logger
	diagnose   DiagnosticFunc
}

// New creates an empty manager. The default format is comma-separated text.
func New(opts ...Option) *Manager {
	text, _ := codec.NewText(codec.SepComma)
	m := &Manager{
		serializer: text,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.diagnose == nil {
		m.diagnose = m.logDiagnostic
	}
	return m
}

func (m *Manager) logDiagnostic(d Diagnostic) {
	m.logger.Warn("skipping malformed line", "path", d.Path, "line", d.Line, "text", d.Text, "err", d.Err)
}

// Serializer returns the active file format.
func (m *Manager) Serializer() codec.Serializer {
	return m.serializer
}

// AddTask validates and appends a new open task.
func (m *Manager) AddTask(description string, priority task.Priority, deadline time.Time) error {
	if description == "" {
		return &task.ValidationError{Field: "description", Err: errors.New("cannot be empty")}
	}
	if !utf8.ValidString(description) {
		return &task.ValidationError{Field: "description", Err: errors.New("must be valid UTF-8")}
	}
	t, err := task.New(description, false, priority, deadline)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, t)
	return nil
}

// ListTasks renders the numbered list, or NoTasksMessage when empty.
func (m *Manager) ListTasks() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tasks) == 0 {
		return NoTasksMessage
	}
	var b strings.Builder
	b.WriteString(listHeader)
	for i, t := range m.tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return b.String()
}

// MarkTaskAsDone marks the task at the 1-based index as done.
func (m *Manager) MarkTaskAsDone(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIndex(index); err != nil {
		return err
	}
	m.tasks[index-1].MarkAsDone()
	return nil
}

// DeleteTask removes the task at the 1-based index. Later tasks move up by
// one position.
func (m *Manager) DeleteTask(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIndex(index); err != nil {
		return err
	}
	m.tasks = append(m.tasks[:index-1], m.tasks[index:]...)
	return nil
}

func (m *Manager) checkIndex(index int) error {
	if index < 1 || index > len(m.tasks) {
		return &IndexError{Index: index, Len: len(m.tasks)}
	}
	return nil
}

// Tasks returns a copy of the list.
func (m *Manager) Tasks() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]task.Task(nil), m.tasks...)
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Stats counts tasks by state. Overdue is relative to day.
func (m *Manager) Stats(day time.Time) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{Total: len(m.tasks)}
	for _, t := range m.tasks {
		if t.Done {
			s.Done++
		} else {
			s.Open++
		}
		if t.Overdue(day) {
			s.Overdue++
		}
	}
	return s
}

// SaveToFile writes the list to filename, replacing any existing file.
func (m *Manager) SaveToFile(filename string) (err error) {
	if err := checkFilename(filename); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := os.Create(filename)
	if err != nil {
		return &PersistenceError{Op: "save", Path: filename, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &PersistenceError{Op: "save", Path: filename, Err: cerr}
		}
	}()

	if err := m.serializer.Encode(f, m.tasks); err != nil {
		return &PersistenceError{Op: "save", Path: filename, Err: err}
	}
	return nil
}

// LoadFromFile replaces the list with the contents of filename. A missing
// file loads as an empty list. Malformed lines are skipped and reported to
// the diagnostics sink; the rest of the file still loads. On any other read
// failure the current list is kept.
func (m *Manager) LoadFromFile(filename string) error {
	if err := checkFilename(filename); err != nil {
		return err
	}

	tasks, diags, err := m.readFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.mu.Lock()
			m.tasks = nil
			m.mu.Unlock()
			return nil
		}
		return &PersistenceError{Op: "load", Path: filename, Err: err}
	}

	m.mu.Lock()
	m.tasks = tasks
	m.mu.Unlock()

	for _, d := range diags {
		m.diagnose(d)
	}
	return nil
}

func (m *Manager) readFile(filename string) ([]task.Task, []Diagnostic, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var tasks []task.Task
	var diags []Diagnostic

	header := m.serializer.Header()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 && header != "" && line == header {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := m.serializer.Decode(line)
		if err != nil {
			diags = append(diags, Diagnostic{Path: filename, Line: lineNo, Text: line, Err: err})
			continue
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return tasks, diags, nil
}

func checkFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return &task.TypeError{Param: "filename", Value: filename, Want: "a non-empty path"}
	}
	return nil
}
