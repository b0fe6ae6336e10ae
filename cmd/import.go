package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import <boxscores.csv> [more.csv ...]",
	Short: "Import box-score CSV files into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	total := 0
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		records, err := ingest.ReadRecords(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if err := db.InsertGameRecords(records); err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
		fmt.Printf("imported %s: %d game lines\n", path, len(records))
		total += len(records)
	}
	fmt.Printf("done: %d game lines total\n", total)
	return nil
}
