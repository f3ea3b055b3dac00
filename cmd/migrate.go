package cmd

import (
	"fmt"
	"strconv"

	"prsk-lab/core/database"
	"prsk-lab/feature/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd groups the schema migration commands
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := database.MigrateUp(cfg.Database); err != nil {
			return err
		}
		return logVersion(cfg.Database, logg)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back SQL migrations (one step by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive number, got %q", args[0])
			}
			steps = n
		}

		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := database.MigrateDown(cfg.Database, steps); err != nil {
			return err
		}
		return logVersion(cfg.Database, logg)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()
		return logVersion(cfg.Database, logg)
	},
}

var migrateAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Create or update tables from the models",
	Long:  `Runs GORM auto migration. Used for sqlite, where SQL migrations are not available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		logg.Info("Auto migration completed", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func logVersion(cfg database.Config, logg *zap.Logger) error {
	version, dirty, err := database.MigrationVersion(cfg)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logg.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd, migrateAutoCmd)
	RootCmd.AddCommand(migrateCmd)
}
