package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/tasklist"
)

func newTestModel(t *testing.T, content string) *model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	m, err := newModel(Options{Path: path})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func press(m *model, keys ...string) *model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(*model)
	}
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestModelLoadsFile(t *testing.T) {
	m := newTestModel(t, " ,Buy milk,1,2025-12-25\nbroken line\nX,Write report,None,None\n")

	if len(m.tasks) != 2 {
		t.Fatalf("tasks: got %d, want 2", len(m.tasks))
	}
	if m.skipped != 1 {
		t.Errorf("skipped: got %d, want 1", m.skipped)
	}
	view := m.View()
	if !strings.Contains(view, "1. [ ] Buy milk | Priority: High | Deadline: 2025-12-25") {
		t.Errorf("view missing first task:\n%s", view)
	}
}

func TestModelBacksUpMalformedLinesBeforeSaving(t *testing.T) {
	original := " ,Good,None,None\n ,Typo,4,None\n"
	m := newTestModel(t, original)

	m = press(m, "x")
	if m.statusErr {
		t.Fatalf("unexpected error: %s", m.status)
	}
	if got := readFile(t, m.path+tasklist.BackupSuffix); got != original {
		t.Errorf("backup: got %q, want %q", got, original)
	}
	if got := readFile(t, m.path); got != "X,Good,None,None\n" {
		t.Errorf("file: got %q", got)
	}
	if !strings.Contains(m.status, "1 malformed lines kept") {
		t.Errorf("status should mention the backup, got %q", m.status)
	}
	if m.skipped != 0 {
		t.Errorf("skipped should reset after saving, got %d", m.skipped)
	}
}

func TestModelEmptyView(t *testing.T) {
	m := newTestModel(t, "")
	if !strings.Contains(m.View(), tasklist.NoTasksMessage) {
		t.Errorf("empty view should say %q", tasklist.NoTasksMessage)
	}
}

func TestModelAddTask(t *testing.T) {
	m := newTestModel(t, "")

	m = press(m, "a", "Pay bills", "enter", "2", "enter", "2025-10-30", "enter")

	if m.mode != modeList {
		t.Fatalf("mode: got %v, want list", m.mode)
	}
	if m.statusErr {
		t.Fatalf("unexpected error: %s", m.status)
	}
	if got := readFile(t, m.path); got != " ,Pay bills,2,2025-10-30\n" {
		t.Errorf("file: got %q", got)
	}
}

func TestModelAddRejectsBadInput(t *testing.T) {
	m := newTestModel(t, "")

	m = press(m, "a", "enter")
	if !m.statusErr || m.mode != modeDescription {
		t.Errorf("empty description should stay in description mode with an error")
	}

	m = press(m, "Call John", "enter", "7", "enter")
	if !m.statusErr || m.mode != modePriority {
		t.Errorf("priority 7 should be rejected, mode %v status %q", m.mode, m.status)
	}

	m = press(m, "esc")
	if m.mode != modeList || len(m.tasks) != 0 {
		t.Errorf("esc should cancel without adding")
	}
}

func TestModelDoneAndDelete(t *testing.T) {
	m := newTestModel(t, " ,First,None,None\n ,Second,None,None\n ,Third,None,None\n")

	m = press(m, "down", "x")
	if !m.tasks[1].Done {
		t.Error("second task should be done")
	}

	m = press(m, "d")
	if len(m.tasks) != 2 || m.tasks[1].Description != "Third" {
		t.Errorf("after delete: got %v", m.tasks)
	}
	if got := readFile(t, m.path); got != " ,First,None,None\n ,Third,None,None\n" {
		t.Errorf("file: got %q", got)
	}

	m = press(m, "down", "d")
	if m.cursor != 0 {
		t.Errorf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestModelCommitError(t *testing.T) {
	m := newTestModel(t, " ,First,None,None\n")
	m.commit = func(*tasklist.Manager) error { return errors.New("disk full") }

	m = press(m, "x")
	if !m.statusErr || !strings.Contains(m.View(), "disk full") {
		t.Errorf("commit error should be shown, got %q", m.status)
	}
}

func TestModelReloadsOnExternalChange(t *testing.T) {
	m := newTestModel(t, " ,First,None,None\n")

	// Ensure the modification time moves even on coarse filesystems.
	later := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(m.path, []byte(" ,First,None,None\n ,Second,None,None\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(m.path, later, later); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(fileChangedMsg{})
	m = next.(*model)
	if len(m.tasks) != 2 {
		t.Errorf("tasks after change: got %d, want 2", len(m.tasks))
	}
}

func TestModelIgnoresOwnWrites(t *testing.T) {
	m := newTestModel(t, " ,First,None,None\n")
	m = press(m, "x")

	m.tasks = nil // would be refilled by a reload
	next, _ := m.Update(fileChangedMsg{})
	m = next.(*model)
	if m.tasks != nil {
		t.Error("own save should not trigger a reload")
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := newTestModel(t, "")

	m = press(m, "?")
	if !strings.Contains(m.View(), "Reload the list from disk") {
		t.Error("help should list keys")
	}
	m = press(m, "q")
	if m.showHelp {
		t.Error("any key should close help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestFileWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := newFileWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(strings.Repeat("x", i+1)), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Writes to other files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fw.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case <-fw.Changes():
		t.Error("burst should produce one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&strings.Builder{}) {
		t.Error("a strings.Builder is not a TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("a regular file is not a TTY")
	}
}
