// Package cli wires the shelves command tree: view for the friendly
// tables, add/edit/delete for the manage workflows, init and config for
// setup. Commands talk to storage only through the Backend interface so
// the CSV and SQLite engines stay interchangeable.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the shelves CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "shelves",
		Short:         "shelves - a personal reading tracker",
		Long:          "Track books, authors, genres, and reading history from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/shelves/config.yml)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}
