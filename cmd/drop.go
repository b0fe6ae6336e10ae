package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete every stored game line",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.DeleteAll()
	if err != nil {
		return fmt.Errorf("drop games: %w", err)
	}
	fmt.Printf("deleted %d game lines\n", n)
	return nil
}
