package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "List stored GPU preferences",
	Long: `List every preference in the store, decoded for display. Verbose mode
shows the raw stored value as well.

Example:
  gpuprefctl prefs
  gpuprefctl prefs -v --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrefs()
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
}

func runPrefs() error {
	m, err := newManager()
	if err != nil {
		return err
	}
	entries, err := m.Prefs()
	if err != nil {
		return fmt.Errorf("listing preferences: %w", err)
	}
	pending := m.PendingReverts()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"preferences":     entries,
			"pending_reverts": len(pending),
		})
	}
	if len(entries) == 0 {
		printInfo("No preferences stored\n")
	}
	for _, e := range entries {
		printInfo("%s\n", e.ExePath)
		if e.Specific != "" {
			printInfo("    specific adapter %s\n", e.Specific)
		} else {
			printInfo("    %s\n", e.Class)
		}
		printVerbose("    raw: %s\n", e.Value)
	}
	if len(pending) > 0 {
		printInfo("\n%d pending revert(s); run 'gpuprefctl cleanup' to restore\n", len(pending))
	}
	return nil
}
