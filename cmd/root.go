// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/tasklist"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	logger *log.Logger
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := newRootCommand(&app{out: out, errOut: errOut})
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "Keep a personal to-do list in a plain file",
		Long: `todo keeps an ordered list of tasks, each with an optional priority
(1 high, 2 medium, 3 low) and an optional deadline (YYYY-MM-DD), and saves it
to a plain text, CSV or JSON Lines file after every change.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetVersionTemplate("todo version {{.Version}}\n")

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(a.addCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.doneCmd())
	root.AddCommand(a.deleteCmd())
	root.AddCommand(a.saveCmd())
	root.AddCommand(a.loadCmd())
	root.AddCommand(a.tuiCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(a.versionCmd())

	return root
}

// init loads configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.NewFromConfig(a.errOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	a.logger.Debug("config loaded", "file", cfg.TodoFile, "format", cfg.Format)
	return nil
}

// openList loads path into a new manager using the format configured for it.
// It also returns how many malformed lines were skipped.
func (a *app) openList(path string) (*tasklist.Manager, int, error) {
	s, err := a.cfg.SerializerFor(path)
	if err != nil {
		return nil, 0, err
	}
	var skipped int
	m := tasklist.New(
		tasklist.WithSerializer(s),
		tasklist.WithLogger(a.logger),
		tasklist.WithDiagnostics(logging.CountingSink(logging.DiagnosticSink(a.logger), &skipped)),
	)
	if err := m.LoadFromFile(path); err != nil {
		return nil, 0, err
	}
	return m, skipped, nil
}

// errMalformedLines stops a save that would drop lines the loader skipped.
var errMalformedLines = errors.New("malformed lines would be lost")

// keepSkipped guards a save over path when loading it skipped lines. Without
// force the save is refused. With force the file is backed up first.
func (a *app) keepSkipped(path string, skipped int, force bool) error {
	if skipped == 0 {
		return nil
	}
	if !force {
		return fmt.Errorf("%s has %d malformed line(s) that saving would drop; fix them or use --force to save with a backup: %w",
			path, skipped, errMalformedLines)
	}
	backup, err := tasklist.BackupFile(path)
	if err != nil {
		return err
	}
	a.logger.Warn("dropping malformed lines", "path", path, "skipped", skipped, "backup", backup)
	return nil
}

// forceFlag registers --force on commands that rewrite the task file.
func forceFlag(cmd *cobra.Command, force *bool) {
	cmd.Flags().BoolVar(force, "force", false, "Save even if malformed lines would be dropped, keeping a .bak copy")
}

// commit saves m to path and runs the post-save hook. A failing hook is
// logged; the save itself has already succeeded.
func (a *app) commit(ctx context.Context, m *tasklist.Manager, path, event string) error {
	if err := m.SaveToFile(path); err != nil {
		return err
	}
	a.logger.Debug("saved", "path", path, "format", m.Serializer().Name(), "tasks", m.Len(), "event", event)

	result, err := hooks.Invoke(ctx, hooks.Options{
		Command: a.cfg.HookCommand,
		Event:   event,
		Path:    path,
		Count:   m.Len(),
		WorkDir: a.cfg.ProjectRoot,
		Stdout:  a.errOut,
		Stderr:  a.errOut,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return err
		}
		a.logger.Warn("post-save hook failed", "command", a.cfg.HookCommand, "exit", result.ExitCode, "err", err)
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version does not need config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "todo version %s\n", Version)
			return nil
		},
	}
}
