package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.reg>",
	Short: "Import preferences from a .reg file",
	Long: `Import preferences from a .reg file produced by 'export' or regedit.
Only values under the GPU preference key are applied; foreign keys are
skipped. Deletion directives ("name"=- and [-key]) are honored.

Example:
  gpuprefctl import backup.reg`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	m, err := newManager()
	if err != nil {
		return err
	}
	res, err := m.Import(data)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(res)
	}
	printInfo("Applied: %d\n", res.Applied)
	printInfo("Removed: %d\n", res.Removed)
	if res.Skipped > 0 {
		printInfo("Skipped: %d\n", res.Skipped)
	}
	printInfo("\n✓ Import complete\n")
	return nil
}
