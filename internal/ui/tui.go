// Package ui provides the terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todo-go/internal/codec"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/tasklist"
)

// Options configures the TUI.
type Options struct {
	// Path is the task file shown and edited.
	Path string
	// Serializer is the file format of Path.
	Serializer codec.Serializer
	Logger     *log.Logger
	// Commit persists the list after a change. Nil means SaveToFile(Path).
	Commit func(*tasklist.Manager) error
	// Watch reloads the list when Path changes on disk.
	Watch bool
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m, err := newModel(opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		fw, err := newFileWatcher(opts.Path, defaultDebounce, opts.Logger)
		if err != nil {
			return fmt.Errorf("watching %s: %w", opts.Path, err)
		}
		defer fw.Close()
		m.changes = fw.Changes()
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type inputMode int

const (
	modeList inputMode = iota
	modeDescription
	modePriority
	modeDeadline
)

type model struct {
	path    string
	manager *tasklist.Manager
	commit  func(*tasklist.Manager) error
	changes <-chan struct{}

	tasks    []task.Task
	cursor   int
	mode     inputMode
	input    textinput.Model
	draft    draftTask
	showHelp bool

	status    string
	statusErr bool
	skipped   int
	today     time.Time

	// lastWrite identifies our own save so the watcher does not reload it.
	lastWrite fileStamp
}

type draftTask struct {
	description string
	priority    task.Priority
}

type fileStamp struct {
	modTime time.Time
	size    int64
}

type fileChangedMsg struct{}

func newModel(opts Options) (*model, error) {
	if opts.Serializer == nil {
		s, err := codec.ForPath(opts.Path, codec.SepComma)
		if err != nil {
			return nil, err
		}
		opts.Serializer = s
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &model{
		path:  opts.Path,
		input: textinput.New(),
		today: time.Now(),
	}
	m.manager = tasklist.New(
		tasklist.WithSerializer(opts.Serializer),
		tasklist.WithLogger(logger),
		tasklist.WithDiagnostics(logging.CountingSink(logging.DiagnosticSink(logger), &m.skipped)),
	)
	m.commit = opts.Commit
	if m.commit == nil {
		m.commit = func(tm *tasklist.Manager) error { return tm.SaveToFile(opts.Path) }
	}
	m.input.CharLimit = 256

	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileChangedMsg:
		if m.mode == modeList && m.stamp() != m.lastWrite {
			if err := m.reload(); err != nil {
				m.setError(err)
			} else {
				m.setInfo("Reloaded after external change")
			}
		}
		return m, waitForChange(m.changes)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "a":
		m.draft = draftTask{}
		m.startInput(modeDescription, "Description")
		return m, textinput.Blink
	case "x", "enter":
		if len(m.tasks) == 0 {
			return m, nil
		}
		index := m.cursor + 1
		m.apply(m.manager.MarkTaskAsDone(index), fmt.Sprintf("Marked task %d as done", index))
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		index := m.cursor + 1
		m.apply(m.manager.DeleteTask(index), fmt.Sprintf("Deleted task %d", index))
	case "s":
		m.apply(nil, "Saved to "+m.path)
	case "r":
		if err := m.reload(); err != nil {
			m.setError(err)
		} else if m.skipped > 0 {
			m.setInfo(fmt.Sprintf("Reloaded, skipped %d malformed lines", m.skipped))
		} else {
			m.setInfo("Reloaded")
		}
	case "?":
		m.showHelp = true
	}
	return m, nil
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		m.setInfo("Add cancelled")
		return m, nil
	case tea.KeyEnter:
		m.submitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput advances the add prompt: description, priority, deadline.
func (m *model) submitInput() {
	value := m.input.Value()
	switch m.mode {
	case modeDescription:
		if strings.TrimSpace(value) == "" {
			m.setError(errors.New("description cannot be empty"))
			return
		}
		m.draft.description = value
		m.startInput(modePriority, "Priority 1-3 (blank for none)")
	case modePriority:
		p, err := tasklist.ParsePriority(value)
		if err != nil {
			m.setError(err)
			return
		}
		m.draft.priority = p
		m.startInput(modeDeadline, "Deadline YYYY-MM-DD (blank for none)")
	case modeDeadline:
		d, err := tasklist.ParseDeadline(value)
		if err != nil {
			m.setError(err)
			return
		}
		m.stopInput()
		err = m.manager.AddTask(m.draft.description, m.draft.priority, d)
		if err == nil {
			m.cursor = m.manager.Len() - 1
		}
		m.apply(err, "Added "+m.draft.description)
	}
}

func (m *model) startInput(mode inputMode, placeholder string) {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.setInfo("")
}

func (m *model) stopInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
}

// apply reports the outcome of a change and persists it when it succeeded.
// Lines skipped by the last load are copied to a backup before the first
// save drops them.
func (m *model) apply(err error, success string) {
	if err != nil {
		m.setError(err)
		return
	}
	if m.skipped > 0 {
		backup, err := tasklist.BackupFile(m.path)
		if err != nil {
			m.setError(err)
			m.sync()
			return
		}
		success = fmt.Sprintf("%s (%d malformed lines kept in %s)", success, m.skipped, backup)
	}
	if err := m.commit(m.manager); err != nil {
		m.setError(err)
	} else {
		m.skipped = 0
		m.setInfo(success)
	}
	m.lastWrite = m.stamp()
	m.sync()
}

func (m *model) reload() error {
	m.skipped = 0
	if err := m.manager.LoadFromFile(m.path); err != nil {
		return err
	}
	m.lastWrite = m.stamp()
	m.sync()
	return nil
}

// sync refreshes the snapshot used for rendering and clamps the cursor.
func (m *model) sync() {
	m.tasks = m.manager.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) stamp() fileStamp {
	info, err := os.Stat(m.path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

func (m *model) setInfo(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do List") + "\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if len(m.tasks) == 0 {
		b.WriteString(emptyStyle.Render(tasklist.NoTasksMessage) + "\n")
	}
	for i, t := range m.tasks {
		b.WriteString(m.renderRow(i, t) + "\n")
	}

	if m.mode != modeList {
		b.WriteString("\n" + promptStyle.Render(m.promptLabel()) + " " + m.input.View() + "\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
		} else {
			b.WriteString("\n" + infoStyle.Render(m.status) + "\n")
		}
	}

	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m *model) renderRow(i int, t task.Task) string {
	line := fmt.Sprintf("%d. %s", i+1, t)
	switch {
	case t.Done:
		line = doneStyle.Render(line)
	case t.Overdue(m.today):
		line = overdueStyle.Render(line)
	}
	if i == m.cursor {
		return cursorStyle.Render("> ") + selectedStyle.Render(line)
	}
	return "  " + line
}

func (m *model) promptLabel() string {
	switch m.mode {
	case modeDescription:
		return "New task:"
	case modePriority:
		return "Priority:"
	case modeDeadline:
		return "Deadline:"
	}
	return ""
}

func (m *model) footer() string {
	if m.mode != modeList {
		return "enter next | esc cancel"
	}
	return "a add | x done | d delete | s save | r reload | ? help | q quit"
}

func writeHelp(b *strings.Builder) {
	keys := []struct{ key, desc string }{
		{"up/k, down/j", "Move the cursor"},
		{"a", "Add a task"},
		{"x, enter", "Mark the selected task as done"},
		{"d", "Delete the selected task"},
		{"s", "Save the list"},
		{"r", "Reload the list from disk"},
		{"?", "Toggle this help"},
		{"q, ctrl+c", "Quit"},
	}
	for _, k := range keys {
		fmt.Fprintf(b, "  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-14s", k.key)), helpDescStyle.Render(k.desc))
	}
	b.WriteString(footerStyle.Render("Press any key to return"))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
