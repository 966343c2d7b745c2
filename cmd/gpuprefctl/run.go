package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxkit/gpupref/pkg/gpupref"
)

var (
	runGpu string
	runDir string
)

func init() {
	runCmd := newRunCmd()
	runCmd.Flags().StringVar(&runGpu, "gpu", "", "Adapter to use: ordinal or identity ID (required)")
	runCmd.Flags().StringVar(&runDir, "dir", "", "Working directory (default: the executable's)")
	_ = runCmd.MarkFlagRequired("gpu")
	rootCmd.AddCommand(runCmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <executable> [-- args...]",
		Short: "Run an executable once on a chosen GPU",
		Long: `Run an executable on the chosen GPU without leaving a permanent
preference behind: the previous store state is journaled, a pin is
applied for the child's lifetime and reverted when it exits. If the
tool dies before reverting, the next 'run' or 'cleanup' finishes the
job.

The tool blocks until the child exits and then exits with the child's
code. Arguments after -- are passed to the child untouched.

Example:
  gpuprefctl run game.exe --gpu 1
  gpuprefctl run "C:\Tools\bench.exe" --gpu 0 -- --fullscreen -fps 240`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args)
		},
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	exe, childArgs, err := splitRunArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}
	// Replay the revert journal before this run journals its own entry, so
	// a pin left behind by a crashed run never outlives the next launch.
	if n := m.Cleanup(); n > 0 {
		printVerbose("Reverted %d orphaned run(s) left by earlier crashes\n", n)
	}
	printVerbose("Launching %s on GPU %s\n", exe, runGpu)
	code, err := m.RunOnce(cmd.Context(), gpupref.RunSpec{
		Path:   exe,
		GpuRef: runGpu,
		Args:   childArgs,
		Dir:    runDir,
	})
	if err != nil {
		return err
	}
	runExitCode = code

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exe":       exe,
			"exit_code": code,
		})
	}
	if code == 0 {
		printInfo("✓ Exited cleanly, preference restored\n")
	} else {
		printInfo("Exited with code %d, preference restored\n", code)
	}
	return nil
}

// splitRunArgs separates the executable from child arguments. dash is the
// index cobra reports for the first argument after --, or -1 when no --
// was given.
func splitRunArgs(args []string, dash int) (string, []string, error) {
	if dash < 0 {
		if len(args) != 1 {
			return "", nil, fmt.Errorf("child arguments must follow --, e.g. run %s -- %s",
				args[0], args[1])
		}
		return args[0], nil, nil
	}
	if dash != 1 {
		return "", nil, fmt.Errorf("expected exactly one executable before --, got %d", dash)
	}
	return args[0], args[dash:], nil
}
