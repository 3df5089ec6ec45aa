// Package hooks invokes the external post-save hook.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Events passed as the first hook argument.
const (
	EventAdd    = "add"
	EventDone   = "done"
	EventDelete = "delete"
	EventSave   = "save"
	EventLoad   = "load"
)

// Options configures a hook invocation.
type Options struct {
	Command string
	Event   string
	Path    string // file that was just written
	Count   int    // number of tasks written
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as: <command> <event> <path> <count>.
// An empty command or path is a no-op.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" || opts.Path == "" {
		return Result{}, nil
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return Result{}, fmt.Errorf("stat saved file: %w", err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("saved path is a directory: %s", opts.Path)
	}

	event := opts.Event
	if event == "" {
		event = EventSave
	}
	args := []string{event, opts.Path, strconv.Itoa(opts.Count)}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
