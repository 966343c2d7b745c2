package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dxkit/gpupref/internal/config"
	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/gpupref"
	"github.com/dxkit/gpupref/pref"
)

var (
	// Global flags
	configFile string
	dataDir    string
	verbose    bool
	quiet      bool
	jsonOut    bool
	dryRun     bool
)

// logCloser holds the log file handle when the config routes diagnostics
// to disk; execute closes it on the way out.
var logCloser io.Closer

// runExitCode carries a child's exit status from `run` to execute, so the
// tool exits with the same code.
var runExitCode int

var rootCmd = &cobra.Command{
	Use:   "gpuprefctl",
	Short: "Pin GPU preferences to executables",
	Long: `gpuprefctl assigns a GPU to an executable through the per-user
DirectX preference store, either permanently or for the lifetime of a
single supervised run with automatic revert.

Preference writes need no elevation but require Windows 10 1803 or
later. Listing, exporting, and importing already-stored preferences
work anywhere.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "Config file (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&dataDir, "data-dir", "", "Directory for journals and caches (default ~/.gpupref)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVar(&dryRun, "dry-run", false, "Apply preferences to an in-memory store instead of the registry")
}

func execute() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if runExitCode != 0 {
		os.Exit(runExitCode)
	}
}

// newManager assembles the facade every subcommand shares. Built at RunE
// time so flag values are bound before the config file is read.
func newManager() (*gpupref.Manager, error) {
	opts := []gpupref.Option{gpupref.WithLogger(cliLogger())}
	if configFile != "" {
		opts = append(opts, gpupref.WithConfigFile(configFile))
	}
	if dataDir != "" {
		opts = append(opts, gpupref.WithDataDir(dataDir))
	}
	if dryRun {
		printVerbose("dry-run: preferences go to an in-memory store\n")
		opts = append(opts, gpupref.WithStore(pref.NewMemoryStore()))
		// The journal and ledger must move with the store: a sweep against
		// the real journal would drop entries whose reverts only reached
		// the throwaway store. An explicit --data-dir is kept as given.
		if dataDir == "" {
			tmp, err := os.MkdirTemp("", "gpupref-dryrun-")
			if err != nil {
				return nil, err
			}
			opts = append(opts, gpupref.WithDataDir(tmp))
		}
	}
	return gpupref.New(opts...)
}

// cliLogger keeps stdout clean for command output: diagnostics go to the
// configured log file, or to stderr only when --verbose is set.
func cliLogger() *slog.Logger {
	cfg, err := config.Load(configFile)
	if err != nil {
		cfg = config.Default()
	}
	level := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	if cfg.Log.File != "" {
		log, closer, ferr := logutil.File(cfg.Log.File, level)
		if ferr == nil {
			logCloser = closer
			return log
		}
	}
	if verbose {
		return logutil.Text(os.Stderr, level)
	}
	return logutil.Nop()
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
