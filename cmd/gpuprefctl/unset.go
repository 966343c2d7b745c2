package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newUnsetCmd())
}

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <executable>",
		Short: "Remove a pinned preference",
		Long: `Remove the stored preference for an executable. The executable does
not have to exist anymore; pins routinely outlive the files they name.

Example:
  gpuprefctl unset "C:\Games\game.exe"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnset(args)
		},
	}
}

func runUnset(args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	removed, err := m.Unpin(args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exe":     args[0],
			"removed": removed,
		})
	}
	if removed {
		printInfo("✓ Preference removed\n")
	} else {
		printInfo("No preference was stored for %s\n", args[0])
	}
	return nil
}
