package commands

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadRuntime()
				if err != nil {
					return err
				}
				return database.MigrateUp(cfg.DatabaseURL, logger)
			},
		},
		newMigrateDownCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadRuntime()
				if err != nil {
					return err
				}
				version, dirty, err := database.MigrationVersion(cfg.DatabaseURL, logger)
				if err != nil {
					return err
				}
				logger.Info("Schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DatabaseURL, steps, logger)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	return cmd
}
