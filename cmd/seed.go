package cmd

import (
	"prsk-lab/core/database"
	"prsk-lab/feature/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the static units and characters",
	Long: `Writes the units and characters keyed on their code. Running it again
updates names and colors without changing IDs. A running server keeps its
cached copy until the cache expires or POST /api/admin/seed is called.`,
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

		result, err := models.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		logg.Info("Seed completed", zap.Int("units", result.Units), zap.Int("characters", result.Characters))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
