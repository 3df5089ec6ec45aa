package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/tasklist"
	"github.com/nibzard/todo-go/internal/ui"
)

func (a *app) tuiCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfg.TodoFile
			s, err := a.cfg.SerializerFor(path)
			if err != nil {
				return err
			}

			// The UI owns the terminal.
			a.logger.SetOutput(io.Discard)
			a.errOut = io.Discard

			return ui.Run(cmd.Context(), ui.Options{
				Path:       path,
				Serializer: s,
				Logger:     a.logger,
				Watch:      !noWatch,
				Commit: func(m *tasklist.Manager) error {
					return a.commit(cmd.Context(), m, path, hooks.EventSave)
				},
			})
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the file changes on disk")
	return cmd
}
