package importcsv

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/paulr25/bp-tracker/cmd/cli/root"
	"github.com/paulr25/bp-tracker/internal/config"
	"github.com/paulr25/bp-tracker/internal/db"
	"github.com/paulr25/bp-tracker/internal/importer"
	"github.com/paulr25/bp-tracker/internal/repo"
	"github.com/spf13/cobra"
)

func init() {
	importCmd := &cobra.Command{
		Use:   "import <csv-file> <username>",
		Short: "Bulk-import readings from a CSV export",
		Long: `Import blood pressure readings from a CSV file with "Date/Time" (DD/MM/YY HH:MM)
and "Reading" (systolic/diastolic) columns. Rows that fail to parse are skipped.
Connects directly to the database using the DB_* environment variables.`,
		Args: cobra.ExactArgs(2),
		RunE: runImport,
	}

	root.GetRoot().AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	filename, username := args[0], args[1]

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	cfg := config.Load()
	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	im := importer.New(
		repo.NewUserRepo(database),
		repo.NewReadingRepo(database),
		slog.Default(),
	)

	summary, err := im.ImportCSV(context.Background(), f, username)
	if err != nil {
		return err
	}

	if summary.Imported == 0 {
		fmt.Printf("No readings were imported (%d rows skipped)\n", summary.Skipped)
		return nil
	}
	fmt.Printf("Successfully imported %d readings (%d rows skipped)\n", summary.Imported, summary.Skipped)
	return nil
}
