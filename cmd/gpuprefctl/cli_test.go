package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dxkit/gpupref/internal/config"
	"github.com/dxkit/gpupref/pkg/types"
	"github.com/dxkit/gpupref/tx"
)

func TestPrefsCommand_EmptyStore(t *testing.T) {
	resetGlobals(t)

	output, err := captureOutput(t, runPrefs)
	if err != nil {
		t.Fatalf("runPrefs() error = %v", err)
	}
	assertContains(t, output, []string{"No preferences stored"})
}

func TestPrefsCommand_JSON(t *testing.T) {
	resetGlobals(t)
	jsonOut = true

	output, err := captureOutput(t, runPrefs)
	if err != nil {
		t.Fatalf("runPrefs() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"pending_reverts"})
}

func TestExportCommand_StdoutUTF8(t *testing.T) {
	resetGlobals(t)
	exportStdout = true
	exportEncoding = "utf8"

	output, err := captureOutput(t, func() error { return runExport(nil) })
	if err != nil {
		t.Fatalf("runExport() error = %v", err)
	}
	assertContains(t, output, []string{
		"Windows Registry Editor Version 5.00",
		`[HKEY_CURRENT_USER\Software\Microsoft\DirectX\UserGpuPreferences]`,
	})
}

func TestExportCommand_StdoutDefaultIsUTF16(t *testing.T) {
	resetGlobals(t)
	exportStdout = true

	output, err := captureOutput(t, func() error { return runExport(nil) })
	if err != nil {
		t.Fatalf("runExport() error = %v", err)
	}
	if !strings.HasPrefix(output, "\xff\xfe") {
		t.Errorf("expected UTF-16LE BOM, got % x", output[:4])
	}
}

func TestExportCommand_RequiresTarget(t *testing.T) {
	resetGlobals(t)

	_, err := captureOutput(t, func() error { return runExport(nil) })
	if err == nil {
		t.Fatal("expected an error without a file or --stdout")
	}
}

func TestExportCommand_WritesFile(t *testing.T) {
	resetGlobals(t)
	out := filepath.Join(t.TempDir(), "backup.reg")

	output, err := captureOutput(t, func() error { return runExport([]string{out}) })
	if err != nil {
		t.Fatalf("runExport() error = %v", err)
	}
	assertContains(t, output, []string{"✓ Exported"})
	if _, err := os.Stat(out); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestImportCommand_AppliesValues(t *testing.T) {
	resetGlobals(t)

	reg := "Windows Registry Editor Version 5.00\r\n\r\n" +
		"[HKEY_CURRENT_USER\\Software\\Microsoft\\DirectX\\UserGpuPreferences]\r\n" +
		"\"C:\\\\Games\\\\game.exe\"=\"GpuPreference=2;\"\r\n" +
		"\"C:\\\\Old\\\\gone.exe\"=-\r\n\r\n" +
		"[HKEY_LOCAL_MACHINE\\Software\\Other]\r\n" +
		"\"x\"=\"y\"\r\n"
	path := filepath.Join(t.TempDir(), "in.reg")
	if err := os.WriteFile(path, []byte(reg), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := captureOutput(t, func() error { return runImport(nil, []string{path}) })
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}
	assertContains(t, output, []string{"Applied: 1", "✓ Import complete"})
}

func TestImportCommand_JSON(t *testing.T) {
	resetGlobals(t)
	jsonOut = true

	reg := "Windows Registry Editor Version 5.00\r\n\r\n" +
		"[HKEY_CURRENT_USER\\Software\\Microsoft\\DirectX\\UserGpuPreferences]\r\n" +
		"\"C:\\\\Games\\\\game.exe\"=\"GpuPreference=1;\"\r\n"
	path := filepath.Join(t.TempDir(), "in.reg")
	if err := os.WriteFile(path, []byte(reg), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := captureOutput(t, func() error { return runImport(nil, []string{path}) })
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"applied": 1`})
}

func TestUnsetCommand_NothingStored(t *testing.T) {
	resetGlobals(t)

	output, err := captureOutput(t, func() error {
		return runUnset([]string{filepath.Join(t.TempDir(), "ghost.exe")})
	})
	if err != nil {
		t.Fatalf("runUnset() error = %v", err)
	}
	assertContains(t, output, []string{"No preference was stored"})
}

func TestResetCommand_EmptyLedger(t *testing.T) {
	resetGlobals(t)

	output, err := captureOutput(t, runReset)
	if err != nil {
		t.Fatalf("runReset() error = %v", err)
	}
	assertContains(t, output, []string{"✓ Restored 0 preference(s)"})
}

func TestCleanupCommand_EmptyJournal(t *testing.T) {
	resetGlobals(t)

	output, err := captureOutput(t, runCleanup)
	if err != nil {
		t.Fatalf("runCleanup() error = %v", err)
	}
	assertContains(t, output, []string{"✓ Reverted 0 orphaned run(s)"})
}

func TestRunCommand_SweepsJournalBeforeLaunch(t *testing.T) {
	resetGlobals(t)
	verbose = true
	runGpu = "0"

	// A run that died before reverting: never spawned, pin still applied.
	cfg := config.Default()
	cfg.DataDir = dataDir
	journal := tx.NewJournal(cfg.JournalPath(), nil)
	if err := journal.Append(types.PendingRevertEntry{
		ID:         uuid.New(),
		ExePath:    `C:\Games\crashed.exe`,
		Original:   "GpuPreference=1;",
		CapturedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seeding journal: %v", err)
	}

	exe := filepath.Join(t.TempDir(), "game.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0o755); err != nil {
		t.Fatal(err)
	}

	// The run itself fails (no adapter "0" to resolve, or an unlaunchable
	// stub); the journal sweep must already have happened by then.
	cmd := newRunCmd()
	cmd.SetContext(context.Background())
	output, err := captureOutput(t, func() error {
		return runRun(cmd, []string{exe})
	})
	if err == nil {
		t.Fatal("expected the run to fail")
	}
	assertContains(t, output, []string{"Reverted 1 orphaned run(s)"})
	if entries := journal.LoadAll(); len(entries) != 0 {
		t.Errorf("sweep should have emptied the journal, got %d entries", len(entries))
	}
}

func TestDryRunWithoutDataDirIsolatesState(t *testing.T) {
	resetGlobals(t)
	dataDir = ""

	m, err := newManager()
	if err != nil {
		t.Fatalf("newManager() error = %v", err)
	}
	if !strings.Contains(m.DataDir(), "gpupref-dryrun-") {
		t.Errorf("dry-run without --data-dir should journal to a throwaway directory, got %q", m.DataDir())
	}
}

func TestSplitRunArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		dash     int
		wantExe  string
		wantArgs int
		wantErr  bool
	}{
		{name: "bare executable", args: []string{"a.exe"}, dash: -1, wantExe: "a.exe"},
		{name: "extra args without dash", args: []string{"a.exe", "-x"}, dash: -1, wantErr: true},
		{name: "dash split", args: []string{"a.exe", "-x", "-y"}, dash: 1, wantExe: "a.exe", wantArgs: 2},
		{name: "two exes before dash", args: []string{"a.exe", "b.exe", "-x"}, dash: 2, wantErr: true},
		{name: "nothing before dash", args: []string{"a.exe"}, dash: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe, childArgs, err := splitRunArgs(tt.args, tt.dash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitRunArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if exe != tt.wantExe {
				t.Errorf("exe = %q, want %q", exe, tt.wantExe)
			}
			if len(childArgs) != tt.wantArgs {
				t.Errorf("child args = %v, want %d of them", childArgs, tt.wantArgs)
			}
		})
	}
}

func TestNormalizeEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "utf16le", want: "UTF-16LE"},
		{in: "UTF-16LE", want: "UTF-16LE"},
		{in: "utf16", want: "UTF-16LE"},
		{in: "", want: "UTF-16LE"},
		{in: "utf8", want: "UTF-8"},
		{in: "UTF-8", want: "UTF-8"},
		{in: "latin1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := normalizeEncoding(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("normalizeEncoding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("normalizeEncoding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVramString(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{bytes: 512, want: "512 B"},
		{bytes: 128 << 20, want: "128 MiB"},
		{bytes: 12 << 30, want: "12.0 GiB"},
		{bytes: 6*(1<<30) + (1 << 29), want: "6.5 GiB"},
	}

	for _, tt := range tests {
		if got := vramString(tt.bytes); got != tt.want {
			t.Errorf("vramString(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
