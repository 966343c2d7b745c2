package gpu

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dxkit/gpupref/pkg/types"
)

// snapshotFile is the on-disk mirror of an enumeration result.
type snapshotFile struct {
	CapturedAt time.Time           `json:"captured_at"`
	Adapters   []types.GpuIdentity `json:"adapters"`
}

// loadSnapshot reads a previously saved adapter list. A missing, unreadable,
// unparsable or stale file is a cache miss, never an error.
func loadSnapshot(path string, maxAge time.Duration, log *slog.Logger) ([]types.GpuIdentity, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn("discarding unparsable adapter snapshot", "path", path, "error", err)
		return nil, false
	}
	if maxAge > 0 && time.Since(snap.CapturedAt) > maxAge {
		log.Debug("adapter snapshot expired", "path", path, "captured_at", snap.CapturedAt)
		return nil, false
	}
	return snap.Adapters, true
}

// saveSnapshot writes the adapter list next to a capture timestamp, creating
// parent directories as needed.
func saveSnapshot(path string, list []types.GpuIdentity) error {
	snap := snapshotFile{CapturedAt: time.Now(), Adapters: list}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
