package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxkit/gpupref/pkg/gpupref"
)

var (
	exportEncoding string
	exportNoBOM    bool
	exportStdout   bool
)

func init() {
	exportCmd := newExportCmd()
	exportCmd.Flags().StringVar(&exportEncoding, "encoding", "utf16le", "Output encoding: utf16le or utf8")
	exportCmd.Flags().BoolVar(&exportNoBOM, "no-bom", false, "Omit the UTF-16 byte order mark")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write to stdout instead of a file")
	rootCmd.AddCommand(exportCmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [output.reg]",
		Short: "Export stored preferences to a .reg file",
		Long: `Export every stored preference as a regedit-compatible .reg file,
usable as a backup or for moving preferences between machines.

The default encoding matches regedit's native export, UTF-16LE with a
byte order mark.

Example:
  gpuprefctl export backup.reg
  gpuprefctl export --stdout --encoding utf8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	if exportStdout && len(args) > 0 {
		return fmt.Errorf("--stdout and an output file are mutually exclusive")
	}
	if !exportStdout && len(args) == 0 {
		return fmt.Errorf("pass an output file or --stdout")
	}

	enc, err := normalizeEncoding(exportEncoding)
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}
	entries, err := m.Prefs()
	if err != nil {
		return fmt.Errorf("listing preferences: %w", err)
	}
	data, err := m.Export(gpupref.ExportOptions{Encoding: enc, NoBOM: exportNoBOM})
	if err != nil {
		return err
	}

	if exportStdout {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"output":   args[0],
			"encoding": enc,
			"entries":  len(entries),
			"bytes":    len(data),
		})
	}
	printInfo("✓ Exported %d preference(s) to %s (%d bytes)\n", len(entries), args[0], len(data))
	return nil
}

// normalizeEncoding maps CLI-friendly encoding names onto the codec's.
func normalizeEncoding(name string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf16le", "utf16":
		return "UTF-16LE", nil
	case "utf8":
		return "UTF-8", nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (use utf16le or utf8)", name)
	}
}
