/*
Package gpupref pins per-application GPU preferences and runs executables
under a temporary preference with guaranteed revert.

# Quick Start

Pin an executable to an adapter permanently:

	m, err := gpupref.New()
	if err != nil {
	    log.Fatal(err)
	}
	pinned, err := m.Pin(`C:\Games\game.exe`, "1")
	fmt.Println(pinned.Value) // SpecificAdapter=10DE&...;GpuPreference=1073741824;

Run once on a chosen adapter, restoring the previous preference afterwards:

	code, err := m.RunOnce(ctx, gpupref.RunSpec{
	    Path:   `C:\Games\game.exe`,
	    GpuRef: "1",
	    Args:   []string{"-windowed"},
	})

# Adapters

Gpus enumerates the physical display adapters in driver order. Each carries
a session-stable ID, the zero-based ordinal, vendor and VRAM details, and a
duplicate index disambiguating identical models. Either the ordinal or the
ID works as the GpuRef accepted by Pin and RunOnce.

# One-Time Runs

RunOnce journals the captured preference before touching the store, so a
crash at any point leaves enough state on disk to restore it. Cleanup
replays that journal: entries whose process is no longer alive are reverted
and dropped. Call it once at startup. The full protocol and its crash
recovery rules are documented in the tx package.

# Permanent Pins

Pin records the pre-pin value in a durable ledger. ResetAll walks that
ledger and restores every original, which is the undo for any number of
pins. Re-pinning the same executable keeps the earliest recorded original.

# Backups

Export renders the whole preference namespace as a Windows Registry Editor
5.00 document that regedit can apply; Import applies such a document back
through the store, honoring value and key deletion directives.

# Collaborators

Every collaborator is injected and overridable through options: the adapter
provider, the preference store, the process launcher, and the logger. Tests
and the CLI dry-run mode substitute in-memory implementations; nothing in
the package reaches for ambient global state.

# Platform Support

The live store and adapter enumeration require Windows 10 build 17134 or
later. On other platforms construction succeeds, enumeration degrades to an
empty list, and mutating operations return ErrStoreUnsupported — useful for
inspecting exported backups or driving the in-memory store in tests.
*/
package gpupref
