package gpupref

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/dxkit/gpupref/gpu"
	"github.com/dxkit/gpupref/internal/config"
	"github.com/dxkit/gpupref/internal/enum"
	"github.com/dxkit/gpupref/internal/launch"
	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/internal/regfile"
	"github.com/dxkit/gpupref/internal/regstore"
	"github.com/dxkit/gpupref/pkg/types"
	"github.com/dxkit/gpupref/pref"
	"github.com/dxkit/gpupref/tx"
)

// Manager is the explicit context object tying the catalog, store, journal,
// and orchestrator together. Construct one per process with New and share
// it; all methods are safe for concurrent use.
type Manager struct {
	log     *slog.Logger
	catalog *gpu.Catalog
	store   types.Store
	journal *tx.Journal
	orch    *tx.Orchestrator
	dataDir string
}

// New builds a Manager from configuration and options. Options override
// what the configuration file provides; collaborators omitted from both get
// the platform defaults.
func New(opts ...Option) (*Manager, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg, err := config.Load(s.configFile)
	if err != nil {
		return nil, err
	}
	if s.dataDir != "" {
		cfg.DataDir = s.dataDir
	}

	log := logutil.OrNop(s.log)

	provider := s.provider
	if provider == nil {
		provider = enum.NewProvider(log)
	}
	catalog := gpu.NewCatalog(provider,
		gpu.WithLogger(log),
		gpu.WithSnapshot(cfg.SnapshotPath(), cfg.SnapshotMaxAge.Duration))

	store := s.store
	if store == nil {
		if cfg.MemoryStore() {
			store = pref.NewMemoryStore()
		} else {
			store = regstore.New(log)
		}
	}

	journal := tx.NewJournal(cfg.JournalPath(), log)
	applied := tx.NewAppliedTracker(cfg.AppliedPath(), log)

	launcher := s.launcher
	if launcher == nil {
		launcher = launch.NewExecLauncher(log)
	}

	orchOpts := []tx.OrchestratorOption{tx.WithLogger(log)}
	if s.probe != nil {
		orchOpts = append(orchOpts, tx.WithLivenessProbe(s.probe))
	}

	return &Manager{
		log:     log,
		catalog: catalog,
		store:   store,
		journal: journal,
		orch:    tx.NewOrchestrator(store, journal, applied, launcher, orchOpts...),
		dataDir: cfg.DataDir,
	}, nil
}

// DataDir returns the directory holding the journal, ledger, and snapshot.
func (m *Manager) DataDir() string { return m.dataDir }

// StoreSupported reports whether the live preference mechanism exists on
// this platform and version.
func (m *Manager) StoreSupported() bool { return m.store.Supported() }

// Gpus returns the enumerated adapter identities, optionally forcing
// re-enumeration past the session cache and on-disk snapshot.
func (m *Manager) Gpus(refresh bool) []types.GpuIdentity {
	if refresh {
		return m.catalog.Refresh()
	}
	return m.catalog.Enumerate()
}

// FindGpu resolves ref — an ordinal or an identity ID — against the
// current enumeration.
func (m *Manager) FindGpu(ref string) (types.GpuIdentity, bool) {
	return m.catalog.Find(ref)
}

// Pin permanently points exePath at the adapter named by gpuRef and records
// the pre-pin value for a later ResetAll.
func (m *Manager) Pin(exePath, gpuRef string) (Pinned, error) {
	target, err := launch.Resolve(exePath, nil, "")
	if err != nil {
		return Pinned{}, err
	}
	id, ok := m.catalog.Find(gpuRef)
	if !ok {
		return Pinned{}, types.NewError(types.ErrKindNotFound,
			fmt.Sprintf("no adapter matches %q", gpuRef), nil)
	}
	if err := m.orch.SetDefault(target.ExePath, id); err != nil {
		return Pinned{}, err
	}
	return Pinned{
		ExePath: target.ExePath,
		Gpu:     id,
		Value:   pref.Encode(id, types.ClassFor(id)),
	}, nil
}

// Unpin removes a pinned preference, reporting whether one existed. Unlike
// Pin it tolerates a missing executable: pins routinely outlive the files
// they name.
func (m *Manager) Unpin(exePath string) (bool, error) {
	return m.orch.Unpin(m.storedPath(exePath))
}

// RunOnce launches the target under a temporary preference and restores
// the previous one when the process exits. It blocks until exit and
// returns the exit code. See the tx package for the crash-safety protocol.
func (m *Manager) RunOnce(ctx context.Context, spec RunSpec) (int, error) {
	target, err := launch.Resolve(spec.Path, spec.Args, spec.Dir)
	if err != nil {
		return 0, err
	}
	id, ok := m.catalog.Find(spec.GpuRef)
	if !ok {
		return 0, types.NewError(types.ErrKindNotFound,
			fmt.Sprintf("no adapter matches %q", spec.GpuRef), nil)
	}
	return m.orch.RunOnce(ctx, tx.RunRequest{
		ExePath:  target.ExePath,
		Identity: id,
		Args:     target.Args,
		Dir:      target.Dir,
	})
}

// Prefs lists every stored preference, decoded for display and sorted by
// executable path.
func (m *Manager) Prefs() ([]PrefEntry, error) {
	prefs, err := m.store.List()
	if err != nil {
		return nil, err
	}
	entries := make([]PrefEntry, 0, len(prefs))
	for path, value := range prefs {
		e := PrefEntry{ExePath: path, Value: value, Class: pref.Decode(value)}
		if t, ok := pref.DecodeSpecific(value); ok {
			e.Specific = t.String()
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ExePath < entries[j].ExePath })
	return entries, nil
}

// PendingReverts returns the revert journal contents, oldest first.
func (m *Manager) PendingReverts() []types.PendingRevertEntry {
	return m.journal.LoadAll()
}

// Cleanup replays the revert journal, restoring preferences left applied
// by runs whose process is no longer alive. Returns the number of entries
// cleaned.
func (m *Manager) Cleanup() int { return m.orch.CleanupPendingReverts() }

// ResetAll restores every preference recorded by Pin to its pre-pin state
// and clears the ledger. Returns the number restored.
func (m *Manager) ResetAll() int { return m.orch.ResetAllApplied() }

// Export renders every stored preference as a .reg document.
func (m *Manager) Export(opts ExportOptions) ([]byte, error) {
	prefs, err := m.store.List()
	if err != nil {
		return nil, err
	}
	return regfile.Export(prefs, regfile.ExportOptions{
		Encoding: opts.Encoding,
		NoBOM:    opts.NoBOM,
	})
}

// Import applies a .reg document to the store. Only the preference key is
// honored; foreign keys are logged and ignored. A key deletion directive
// clears every stored preference, a value deletion removes one, and string
// values are written as-is.
func (m *Manager) Import(data []byte) (ImportResult, error) {
	var res ImportResult
	if !m.store.Supported() {
		return res, types.ErrStoreUnsupported
	}
	file, err := regfile.Parse(data)
	if err != nil {
		return res, err
	}
	for _, key := range file.Keys {
		if !regfile.IsPreferenceKey(key.Path) {
			m.log.Warn("ignoring foreign registry key in import", "path", key.Path)
			continue
		}
		if key.Delete {
			existing, err := m.store.List()
			if err != nil {
				return res, err
			}
			for path := range existing {
				if _, err := m.store.Remove(path); err != nil {
					return res, err
				}
				res.Removed++
			}
			continue
		}
		for _, v := range key.Values {
			switch {
			case v.Name == "":
				m.log.Warn("skipping default value in import")
				res.Skipped++
			case v.Delete:
				existed, err := m.store.Remove(v.Name)
				if err != nil {
					return res, err
				}
				if existed {
					res.Removed++
				}
			case v.Type == regfile.TypeString:
				if err := m.store.Set(v.Name, v.Data); err != nil {
					return res, err
				}
				res.Applied++
			default:
				m.log.Warn("skipping non-string value in import", "name", v.Name, "type", v.Type)
				res.Skipped++
			}
		}
	}
	return res, nil
}

// storedPath resolves raw the way Pin does, falling back to the absolute
// form of the literal path when the file no longer exists.
func (m *Manager) storedPath(raw string) string {
	if target, err := launch.Resolve(raw, nil, ""); err == nil {
		return target.ExePath
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return raw
	}
	return abs
}
