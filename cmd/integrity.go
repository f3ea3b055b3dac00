package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"prsk-lab/core/database"
	"prsk-lab/core/storage"
	"prsk-lab/feature/integrity"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and furniture image storage",
	Long: `Compares the database tables against the models and the furniture image
keys against the storage bucket. With --fix the bucket is created, orphan
images are removed and dangling image keys are cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		fix, _ := cmd.Flags().GetBool("fix")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		svc := integrity.NewService(db, client, cfg.Storage, logg)
		report, err := svc.Run(ctx, fix)
		if err != nil {
			return fmt.Errorf("integrity check failed: %w", err)
		}

		if jsonOutput {
			filename := fmt.Sprintf("integrity_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		printReport(report, time.Since(startTime))

		logg.Info("Integrity check completed",
			zap.Bool("healthy", report.Healthy),
			zap.Int("missing_images", len(report.Storage.MissingImages)),
			zap.Int("orphan_images", len(report.Storage.OrphanImages)),
			zap.Strings("fixed", report.Storage.Fixed),
		)
		if !report.Healthy {
			return fmt.Errorf("integrity check found problems")
		}
		return nil
	},
}

func printReport(report *integrity.Report, elapsed time.Duration) {
	fmt.Println("\n=== Schema ===")
	tables := make([]string, 0, len(report.Schema.Tables))
	for name := range report.Schema.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		t := report.Schema.Tables[name]
		fmt.Printf("%-45s %s\n", name, t.Status)
		for _, col := range t.MissingColumns {
			fmt.Printf("  missing column: %s\n", col)
		}
		for _, m := range t.TypeMismatches {
			fmt.Printf("  type mismatch: %s\n", m)
		}
	}
	for _, e := range report.Schema.Errors {
		fmt.Printf("error: %s\n", e)
	}

	fmt.Println("\n=== Storage ===")
	fmt.Printf("Bucket: %s (exists: %t)\n", report.Storage.Bucket, report.Storage.BucketExists)
	fmt.Printf("Objects: %d\n", report.Storage.Objects)
	fmt.Printf("Missing Images: %d\n", len(report.Storage.MissingImages))
	fmt.Printf("Orphan Images: %d\n", len(report.Storage.OrphanImages))
	if len(report.Storage.Fixed) > 0 {
		fmt.Printf("Fixed: %v\n", report.Storage.Fixed)
	}
	fmt.Printf("\nHealthy: %t\n", report.Healthy)
	fmt.Printf("Execution Time: %s\n", elapsed.String())
}

func init() {
	integrityCmd.Flags().Bool("fix", false, "Repair what can be repaired")
	integrityCmd.Flags().Bool("json", false, "Save the full report as JSON")
	RootCmd.AddCommand(integrityCmd)
}
