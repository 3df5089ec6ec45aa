package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/tasklist"
	"github.com/nibzard/todo-go/internal/utils"
)

func (a *app) saveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Save a copy of the list to another file",
		Long: `Save a copy of the list to another file. The format follows the
target's extension when format is auto. A path without an extension gets the
format's extension appended. Saving over the task file itself is refused
when it has malformed lines, unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, skipped, err := a.openList(a.cfg.TodoFile)
			if err != nil {
				return err
			}

			s, err := a.cfg.SerializerFor(args[0])
			if err != nil {
				return err
			}
			target := utils.EnsureExtension(args[0], s.Extension())
			if samePath(target, a.cfg.TodoFile) {
				if err := a.keepSkipped(target, skipped, force); err != nil {
					return err
				}
			}

			dst := tasklist.New(
				tasklist.WithSerializer(s),
				tasklist.WithLogger(a.logger),
				tasklist.WithTasks(src.Tasks()...),
			)
			if err := a.commit(cmd.Context(), dst, target, hooks.EventSave); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d tasks to %s (%s)\n", green("Saved"), dst.Len(), target, dst.Serializer().Name())
			return nil
		},
	}
	forceFlag(cmd, &force)
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Replace the list with the contents of another file",
		Long: `Replace the list with the contents of another file. Malformed lines
in the source are skipped with a warning. A missing source file empties the
list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.openList(args[0])
			if err != nil {
				return err
			}

			path := a.cfg.TodoFile
			s, err := a.cfg.SerializerFor(path)
			if err != nil {
				return err
			}
			dst := tasklist.New(
				tasklist.WithSerializer(s),
				tasklist.WithLogger(a.logger),
				tasklist.WithTasks(src.Tasks()...),
			)
			if err := a.commit(cmd.Context(), dst, path, hooks.EventLoad); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d tasks from %s\n", green("Loaded"), dst.Len(), args[0])
			return nil
		},
	}
}

// samePath reports whether a and b name the same file location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
