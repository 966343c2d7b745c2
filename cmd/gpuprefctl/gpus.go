package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxkit/gpupref/pkg/types"
)

var gpusRefresh bool

func init() {
	gpusCmd := newGpusCmd()
	gpusCmd.Flags().
		BoolVar(&gpusRefresh, "refresh", false, "Re-enumerate adapters instead of serving the cached set")
	rootCmd.AddCommand(gpusCmd)
}

func newGpusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gpus",
		Short: "List display adapters",
		Long: `List the display adapters visible to the tool, with the ordinal and
identity ID accepted by the --gpu flag of 'set' and 'run'.

Enumeration results are cached; --refresh forces a fresh pass.

Example:
  gpuprefctl gpus
  gpuprefctl gpus --refresh --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGpus()
		},
	}
}

func runGpus() error {
	m, err := newManager()
	if err != nil {
		return err
	}
	gpus := m.Gpus(gpusRefresh)

	if jsonOut {
		return printJSON(gpus)
	}
	if len(gpus) == 0 {
		printInfo("No adapters found\n")
		return nil
	}
	for _, g := range gpus {
		printInfo("[%d] %s\n", g.Ordinal, g.DisplayName())
		printInfo("    Type:   %s\n", adapterType(g))
		printInfo("    Vendor: %s\n", g.Vendor)
		if g.VRAMBytes > 0 {
			printInfo("    VRAM:   %s\n", vramString(g.VRAMBytes))
		}
		printInfo("    ID:     %s\n", g.ID)
		if verbose {
			if g.LUID != 0 {
				printInfo("    LUID:   0x%016X\n", g.LUID)
			}
			if g.PNPID != "" {
				printInfo("    Device: %s\n", g.PNPID)
			}
			if g.LocationHint != "" {
				printInfo("    Slot:   %s\n", g.LocationHint)
			}
		}
	}
	return nil
}

func adapterType(g types.GpuIdentity) string {
	if g.IsIntegrated {
		return "integrated"
	}
	return "discrete"
}

func vramString(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%d MiB", b>>20)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
