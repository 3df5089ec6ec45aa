package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/tasklist"
)

func (a *app) addCmd() *cobra.Command {
	var priority, deadline string
	var force bool

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task",
		Long: `Add a task to the end of the list. Words after "add" form the description.

Priority is 1 (high), 2 (medium) or 3 (low). Deadline is YYYY-MM-DD.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := tasklist.ParsePriority(priority)
			if err != nil {
				return err
			}
			d, err := tasklist.ParseDeadline(deadline)
			if err != nil {
				return err
			}

			path := a.cfg.TodoFile
			m, skipped, err := a.openList(path)
			if err != nil {
				return err
			}
			description := strings.Join(args, " ")
			if err := m.AddTask(description, p, d); err != nil {
				return err
			}
			if err := a.keepSkipped(path, skipped, force); err != nil {
				return err
			}
			if err := a.commit(cmd.Context(), m, path, hooks.EventAdd); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s task %d: %s\n", green("Added"), m.Len(), description)
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: 1 (high), 2 (medium), 3 (low)")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline as YYYY-MM-DD")
	forceFlag(cmd, &force)
	return cmd
}

// taskJSON is the list --json view of a task.
type taskJSON struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Done        bool    `json:"done"`
	Priority    *int    `json:"priority"`
	Deadline    *string `json:"deadline"`
	Overdue     bool    `json:"overdue"`
}

func (a *app) listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, _, err := a.openList(a.cfg.TodoFile)
			if err != nil {
				return err
			}
			today := time.Now()

			if asJSON {
				return a.printJSON(m.Tasks(), today)
			}

			fmt.Fprintln(a.out, strings.TrimRight(m.ListTasks(), "\n"))
			if m.Len() == 0 {
				return nil
			}
			st := m.Stats(today)
			summary := fmt.Sprintf("%d open, %d done", st.Open, st.Done)
			if st.Overdue > 0 {
				summary += ", " + red(fmt.Sprintf("%d overdue", st.Overdue))
			}
			fmt.Fprintln(a.out, dim(summary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Machine-readable JSON output")
	return cmd
}

func (a *app) printJSON(tasks []task.Task, today time.Time) error {
	out := make([]taskJSON, 0, len(tasks))
	for i, t := range tasks {
		v := taskJSON{
			Index:       i + 1,
			Description: t.Description,
			Done:        t.Done,
			Overdue:     t.Overdue(today),
		}
		if t.Priority.IsSet() {
			p := int(t.Priority)
			v.Priority = &p
		}
		if t.HasDeadline() {
			d := t.DeadlineString()
			v.Deadline = &d
		}
		out = append(out, v)
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (a *app) doneCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "done <index>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := tasklist.ParseIndex(args[0])
			if err != nil {
				return err
			}
			path := a.cfg.TodoFile
			m, skipped, err := a.openList(path)
			if err != nil {
				return err
			}
			if err := m.MarkTaskAsDone(index); err != nil {
				return err
			}
			if err := a.keepSkipped(path, skipped, force); err != nil {
				return err
			}
			if err := a.commit(cmd.Context(), m, path, hooks.EventDone); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s task %d as done\n", green("Marked"), index)
			return nil
		},
	}
	forceFlag(cmd, &force)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task. Tasks after it move up by one position.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := tasklist.ParseIndex(args[0])
			if err != nil {
				return err
			}
			path := a.cfg.TodoFile
			m, skipped, err := a.openList(path)
			if err != nil {
				return err
			}
			if err := m.DeleteTask(index); err != nil {
				return err
			}
			if err := a.keepSkipped(path, skipped, force); err != nil {
				return err
			}
			if err := a.commit(cmd.Context(), m, path, hooks.EventDelete); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s task %d\n", yellow("Deleted"), index)
			return nil
		},
	}
	forceFlag(cmd, &force)
	return cmd
}
