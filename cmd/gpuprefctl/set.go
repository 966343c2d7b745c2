package main

import (
	"github.com/spf13/cobra"
)

var setGpu string

func init() {
	setCmd := newSetCmd()
	setCmd.Flags().StringVar(&setGpu, "gpu", "", "Adapter to pin: ordinal or identity ID (required)")
	_ = setCmd.MarkFlagRequired("gpu")
	rootCmd.AddCommand(setCmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <executable>",
		Short: "Pin a GPU to an executable",
		Long: `Pin a GPU to an executable permanently. The executable must exist;
the adapter is chosen by ordinal or identity ID (see 'gpus').

Discrete adapters are pinned by their device codes when known, so the
pin survives adapter reboots and re-enumeration. Integrated adapters
pin as the power-saving class. The pre-pin value is recorded for a
later 'reset'.

Example:
  gpuprefctl set "C:\Games\game.exe" --gpu 1
  gpuprefctl set notepad.exe --gpu 1db6a2ef33c0f7da`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	pinned, err := m.Pin(args[0], setGpu)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(pinned)
	}
	printInfo("Pinned %s\n", pinned.ExePath)
	printInfo("  GPU: %s (%s)\n", pinned.Gpu.DisplayName(), adapterType(pinned.Gpu))
	printVerbose("  Value: %s\n", pinned.Value)
	printInfo("\n✓ Preference written\n")
	return nil
}
