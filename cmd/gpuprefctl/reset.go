package main

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore every preference pinned by this tool",
	Long: `Restore each preference recorded by 'set' to its pre-pin state:
entries that existed before the pin are rewritten with their original
value, entries that did not are removed. Preferences written by other
tools are left alone. The ledger is cleared afterwards, so a second
reset is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReset()
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset() error {
	m, err := newManager()
	if err != nil {
		return err
	}
	n := m.ResetAll()

	if jsonOut {
		return printJSON(map[string]interface{}{"restored": n})
	}
	printInfo("✓ Restored %d preference(s)\n", n)
	return nil
}
