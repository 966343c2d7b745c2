package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound     ErrKind = iota // executable or referenced adapter missing
	ErrKindUnsupported                 // platform/version lacks the preference mechanism
	ErrKindStoreWrite                  // permission/IO failure touching the preference store
	ErrKindProcessStart                // external process failed to start
	ErrKindRevert                      // reverting a preference failed (non-fatal, logged)
	ErrKindState                       // invalid operation for current state
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed error wrapping an optional cause.
func NewError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// IsKind reports whether err (or anything it wraps) is a typed Error of the
// given kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotFound indicates a missing executable or adapter reference.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrStoreUnsupported indicates the preference store does not exist on
	// this platform or Windows version. No mutation was attempted.
	ErrStoreUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "gpu preference store unsupported on this system"}
	// ErrStoreWrite indicates a preference write failed (permission or IO).
	ErrStoreWrite = &Error{Kind: ErrKindStoreWrite, Msg: "preference store write failed"}
	// ErrProcessStart indicates the target process never started.
	ErrProcessStart = &Error{Kind: ErrKindProcessStart, Msg: "process start failed"}
)

// -----------------------------------------------------------------------------
// Adapter Identity
// -----------------------------------------------------------------------------

// Vendor identifies a GPU manufacturer, classified from PCI vendor codes
// first and display-name heuristics second.
type Vendor uint8

const (
	VendorOther Vendor = iota
	VendorNVIDIA
	VendorAMD
	VendorIntel
)

// String implements the Stringer interface for Vendor.
func (v Vendor) String() string {
	switch v {
	case VendorNVIDIA:
		return "NVIDIA"
	case VendorAMD:
		return "AMD"
	case VendorIntel:
		return "Intel"
	default:
		return "Other"
	}
}

// PCI vendor codes seen in device paths (the VEN_xxxx field).
const (
	PCIVendorNVIDIA = 0x10DE
	PCIVendorAMD    = 0x1002
	PCIVendorIntel  = 0x8086
)

// GpuIdentity describes one physical display adapter for a single
// enumeration session. Identities are rebuilt on every enumeration pass;
// ID is stable within a session but not across reboots or driver
// reinstalls.
type GpuIdentity struct {
	// ID is a session-stable opaque identifier, derived from the LUID when
	// known, otherwise from the device path, otherwise from the ordinal.
	ID string `json:"id"`

	// Ordinal is the zero-based driver enumeration index. It doubles as the
	// simple preference class selector in the CLI.
	Ordinal int `json:"ordinal"`

	Name         string `json:"name"`
	Vendor       Vendor `json:"vendor"`
	VRAMBytes    uint64 `json:"vram_bytes"`
	LocationHint string `json:"location_hint,omitempty"`

	// PNPID is the platform device path carrying VEN_/DEV_/SUBSYS_ codes,
	// e.g. "PCI\VEN_10DE&DEV_2206&SUBSYS_38971462&REV_A1\...". Empty when
	// unavailable.
	PNPID string `json:"pnp_id,omitempty"`

	// LUID is the 64-bit adapter identifier packed as high<<32 | low.
	// Zero when unknown.
	LUID uint64 `json:"luid,omitempty"`

	IsIntegrated bool `json:"is_integrated"`

	// DuplicateIndex is 0 when Name is unique among the enumerated adapters;
	// otherwise 1..N assigned in ascending Ordinal order within the group of
	// adapters sharing the same Name.
	DuplicateIndex int `json:"duplicate_index"`
}

// DisplayName returns the adapter name, suffixed with the duplicate index
// when several adapters share it ("Intel UHD Graphics 630 (#2)").
func (g GpuIdentity) DisplayName() string {
	if g.DuplicateIndex == 0 {
		return g.Name
	}
	return fmt.Sprintf("%s (#%d)", g.Name, g.DuplicateIndex)
}

// RawAdapter is one record handed to the catalog by an AdapterProvider,
// before classification and duplicate disambiguation.
type RawAdapter struct {
	Name      string
	PNPID     string // "" if the platform exposes no device path
	VRAMBytes uint64
	LUID      uint64 // 0 if unknown
	VendorID  uint32 // PCI vendor code, 0 if unknown
	DeviceID  uint32
	SubsysID  uint32
	Location  string
	Software  bool // software/reference rasterizer, excluded from results
}

// AdapterProvider supplies raw adapter records in driver enumeration order.
// Implementations must return records for physical adapters only or mark
// software adapters so the catalog can drop them.
type AdapterProvider interface {
	Adapters() ([]RawAdapter, error)
}

// -----------------------------------------------------------------------------
// Preference Classes & Store
// -----------------------------------------------------------------------------

// PreferenceClass is the coarse GPU selector persisted in basic preference
// strings. The numeric values are fixed by the platform grammar.
type PreferenceClass int

const (
	ClassDefault         PreferenceClass = 0
	ClassPowerSaving     PreferenceClass = 1
	ClassHighPerformance PreferenceClass = 2
)

// String implements the Stringer interface for PreferenceClass.
func (c PreferenceClass) String() string {
	switch c {
	case ClassPowerSaving:
		return "power saving"
	case ClassHighPerformance:
		return "high performance"
	default:
		return "default"
	}
}

// Valid reports whether c is one of the three platform-defined classes.
func (c PreferenceClass) Valid() bool {
	return c == ClassDefault || c == ClassPowerSaving || c == ClassHighPerformance
}

// ClassFor derives the preference class for an adapter: integrated parts map
// to power saving, discrete parts to high performance.
func ClassFor(id GpuIdentity) PreferenceClass {
	if id.IsIntegrated {
		return ClassPowerSaving
	}
	return ClassHighPerformance
}

// NoPreference is the sentinel recorded in place of a captured preference
// when the store held no entry for the executable. It never appears as a
// live store value.
const NoPreference = "NONE"

// Store is a durable, flat map from absolute executable path to an encoded
// preference string. Keys compare case-insensitively; writing overwrites;
// absence means "no preference".
//
// Store operations are single-key atomic only. Composing capture+write is
// not atomic across the store, which is why one-time runs journal their
// revert state separately.
type Store interface {
	// Get returns the preference for exePath. Read errors are treated as
	// absent, never surfaced.
	Get(exePath string) (string, bool)

	// Set writes the preference for exePath, creating the backing namespace
	// on first use. Returns ErrStoreUnsupported or an ErrKindStoreWrite
	// error on failure.
	Set(exePath, value string) error

	// Remove deletes the preference for exePath, reporting whether an entry
	// existed.
	Remove(exePath string) (bool, error)

	// List returns all stored preferences keyed by executable path.
	List() (map[string]string, error)

	// Supported reports whether the preference mechanism exists on this
	// platform and version, independent of any individual key.
	Supported() bool
}

// -----------------------------------------------------------------------------
// Transaction Records
// -----------------------------------------------------------------------------

// PendingRevertEntry records one in-flight one-time run. Its presence in
// the journal means the preference for ExePath may currently be incorrect
// and must eventually be restored to Original.
//
// The logical key is (ExePath, CapturedAt); ID exists for log correlation.
type PendingRevertEntry struct {
	ID         uuid.UUID `json:"id"`
	ExePath    string    `json:"exe_path"`
	Original   string    `json:"original_preference"` // NoPreference when absent
	CapturedAt time.Time `json:"captured_at"`
	ProcessID  int       `json:"process_id"` // 0 until the process spawned
}

// AppliedPreference records a permanent pin made by SetDefault so a later
// bulk reset can restore the pre-pin state.
type AppliedPreference struct {
	ExePath   string    `json:"exe_path"`
	Original  string    `json:"original_preference"` // NoPreference when absent
	Applied   string    `json:"applied_preference"`
	AppliedAt time.Time `json:"applied_at"`
}

// -----------------------------------------------------------------------------
// Process Collaborators
// -----------------------------------------------------------------------------

// Target is the resolved launch triple supplied by the target-resolution
// collaborator. The transaction core consumes this triple as-is and never
// interprets shortcuts, batch files, or store URLs itself.
type Target struct {
	ExePath string
	Args    []string
	Dir     string
}

// Process is a spawned external process being monitored by a one-time run.
type Process interface {
	// PID returns the OS process id, available immediately after spawn.
	PID() int

	// Wait blocks until the process exits and returns its exit code. A
	// non-nil error means the exit status could not be determined; the
	// process is still gone when Wait returns.
	Wait() (int, error)
}

// Launcher spawns external processes. The orchestrator never blocks on
// anything but Process.Wait.
type Launcher interface {
	Start(target Target) (Process, error)
}
