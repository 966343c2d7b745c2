package gpupref

import (
	"log/slog"

	"github.com/dxkit/gpupref/pkg/types"
	"github.com/dxkit/gpupref/tx"
)

// settings collects the overridable pieces before construction wires them.
type settings struct {
	configFile string
	dataDir    string
	log        *slog.Logger
	store      types.Store
	provider   types.AdapterProvider
	launcher   types.Launcher
	probe      tx.LivenessProbe
}

// Option configures Manager construction.
type Option func(*settings)

// WithConfigFile loads configuration from path instead of the default
// search locations. The file must exist.
func WithConfigFile(path string) Option {
	return func(s *settings) { s.configFile = path }
}

// WithDataDir overrides the directory holding the revert journal, the
// applied-preference ledger, and the adapter snapshot.
func WithDataDir(dir string) Option {
	return func(s *settings) { s.dataDir = dir }
}

// WithLogger directs diagnostics from every component to l. Without it the
// manager is silent.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithStore replaces the live preference store. The CLI dry-run mode and
// tests pass an in-memory store here.
func WithStore(store types.Store) Option {
	return func(s *settings) { s.store = store }
}

// WithProvider replaces the platform adapter provider.
func WithProvider(p types.AdapterProvider) Option {
	return func(s *settings) { s.provider = p }
}

// WithLauncher replaces the process launcher used by one-time runs.
func WithLauncher(l types.Launcher) Option {
	return func(s *settings) { s.launcher = l }
}

// WithLivenessProbe replaces the platform process-liveness probe consulted
// by Cleanup.
func WithLivenessProbe(probe tx.LivenessProbe) Option {
	return func(s *settings) { s.probe = probe }
}

// RunSpec describes a one-time run request.
type RunSpec struct {
	// Path is the executable path, or a bare name resolved against PATH.
	Path string

	// GpuRef selects the adapter: a catalog ordinal or an identity ID.
	GpuRef string

	Args []string

	// Dir is the working directory; empty means the executable's own.
	Dir string
}

// Pinned describes a pin after it has been written.
type Pinned struct {
	ExePath string            `json:"exe_path"`
	Gpu     types.GpuIdentity `json:"gpu"`
	Value   string            `json:"value"`
}

// PrefEntry is one stored preference, decoded for display.
type PrefEntry struct {
	ExePath string                `json:"exe_path"`
	Value   string                `json:"value"`
	Class   types.PreferenceClass `json:"class"`

	// Specific carries the "VVVV&DDDD&SSSSSSSS" adapter codes when Value is
	// a specific-adapter encoding.
	Specific string `json:"specific_adapter,omitempty"`
}

// ExportOptions controls backup encoding.
type ExportOptions struct {
	// Encoding selects "UTF-16LE" (default, what regedit exports natively)
	// or "UTF-8".
	Encoding string

	// NoBOM omits the byte order mark from UTF-16LE output.
	NoBOM bool
}

// ImportResult tallies what an import changed.
type ImportResult struct {
	Applied int `json:"applied"` // string values written
	Removed int `json:"removed"` // deletion directives honored
	Skipped int `json:"skipped"` // values that could not be applied
}
