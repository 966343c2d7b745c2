package main

import (
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Revert preferences left behind by crashed runs",
	Long: `Replay the revert journal. Each entry whose supervising process is no
longer alive has its original preference restored; entries for live
runs are kept. 'run' performs the same sweep before launching, so this
is only needed to tidy up without starting anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCleanup()
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup() error {
	m, err := newManager()
	if err != nil {
		return err
	}
	n := m.Cleanup()
	remaining := len(m.PendingReverts())

	if jsonOut {
		return printJSON(map[string]interface{}{
			"reverted":  n,
			"remaining": remaining,
		})
	}
	printInfo("✓ Reverted %d orphaned run(s)\n", n)
	if remaining > 0 {
		printInfo("Kept %d entry(s) whose process is still alive\n", remaining)
	}
	return nil
}
