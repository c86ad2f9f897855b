package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoebeshelves/shelves/internal/config"
	"github.com/phoebeshelves/shelves/internal/csvstore"
	"github.com/phoebeshelves/shelves/internal/database"
)

// NewInitCommand creates the init command: write the config file and
// seed empty storage for the configured backend.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file and empty storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			switch cfg.Backend {
			case config.BackendSQLite:
				if err := database.Init(cfg.DatabasePath, force); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s backend at %s\n",
					color.GreenString("sqlite"), cfg.DatabasePath)
			case config.BackendCSV:
				if err := csvstore.Init(cfg.DataDir, force); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s backend under %s\n",
					color.GreenString("csv"), cfg.DataDir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing tables with empty ones")
	return cmd
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config file:   %s\n", cfg.Path())
			fmt.Fprintf(out, "backend:       %s\n", cfg.Backend)
			fmt.Fprintf(out, "data_dir:      %s\n", cfg.DataDir)
			fmt.Fprintf(out, "database_path: %s\n", cfg.DatabasePath)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (backend, data_dir, database_path)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(show)
	cmd.AddCommand(set)
	return cmd
}
