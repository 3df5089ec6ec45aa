package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
	}
	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configInitCmd())
	return cmd
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cws, err := config.LoadWithSources(cmd.Flags())
			if err != nil {
				return err
			}
			cfg := cws.Config

			if f := cws.ConfigFile(); f != "" {
				fmt.Fprintf(a.out, "%s %s\n\n", bold("Config file:"), f)
			} else {
				fmt.Fprintf(a.out, "%s %s\n\n", bold("Config file:"), dim("none"))
			}

			rows := []struct {
				key   string
				value any
			}{
				{"todo_file", cfg.TodoFile},
				{"format", cfg.Format},
				{"separator", fmt.Sprintf("%q", cfg.Separator)},
				{"hook_command", cfg.HookCommand},
				{"log_level", cfg.LogLevel},
				{"log_format", cfg.LogFormat},
				{"log_timestamps", cfg.LogTimestamps},
				{"log_caller", cfg.LogCaller},
			}
			for _, r := range rows {
				fmt.Fprintf(a.out, "%-15s %-40v %s\n", r.key, r.value, dim("("+string(cws.Sources[r.key])+")"))
			}
			return nil
		},
	}
}

func (a *app) configInitCmd() *cobra.Command {
	var user, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example todo.toml",
		Long: `Write an example todo.toml to the current directory, or to
~/.todo/todo.toml with --user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ProjectConfigName
			if user {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				path = filepath.Join(home, ".todo", config.ProjectConfigName)
			}
			if err := config.WriteExample(path, force); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", green("Wrote"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
