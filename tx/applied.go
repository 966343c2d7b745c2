package tx

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// AppliedTracker is the durable ledger of permanent pins made by
// SetDefault, kept so ResetAllApplied can restore every pre-pin state.
// Unlike the revert journal it is meant to persist across runs; entries
// leave only through Unpin or a reset.
type AppliedTracker struct {
	path string
	log  *slog.Logger

	mu sync.Mutex
}

// NewAppliedTracker returns a tracker backed by the JSON file at path.
func NewAppliedTracker(path string, log *slog.Logger) *AppliedTracker {
	return &AppliedTracker{path: path, log: logutil.OrNop(log)}
}

// Path returns the backing file location.
func (t *AppliedTracker) Path() string { return t.path }

// Record notes that applied now overrides original for exePath. Re-pinning
// a path that is already tracked updates the applied value but keeps the
// FIRST recorded original, so a later reset restores the true pre-pin
// state rather than an intermediate pin.
func (t *AppliedTracker) Record(exePath, original, applied string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := loadList[types.AppliedPreference](t.path, t.log)
	for i := range list {
		if list[i].ExePath == exePath {
			list[i].Applied = applied
			list[i].AppliedAt = time.Now()
			return t.store(list)
		}
	}
	list = append(list, types.AppliedPreference{
		ExePath:   exePath,
		Original:  original,
		Applied:   applied,
		AppliedAt: time.Now(),
	})
	return t.store(list)
}

// Remove drops tracking for exePath, reporting whether it was tracked.
func (t *AppliedTracker) Remove(exePath string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := loadList[types.AppliedPreference](t.path, t.log)
	kept := list[:0]
	removed := false
	for _, e := range list {
		if e.ExePath == exePath {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	return true, t.store(kept)
}

// LoadAll returns the tracked pins.
func (t *AppliedTracker) LoadAll() []types.AppliedPreference {
	t.mu.Lock()
	defer t.mu.Unlock()
	return loadList[types.AppliedPreference](t.path, t.log)
}

// Clear empties the ledger.
func (t *AppliedTracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store([]types.AppliedPreference{})
}

func (t *AppliedTracker) store(list []types.AppliedPreference) error {
	if err := storeList(t.path, list); err != nil {
		return types.NewError(types.ErrKindStoreWrite, "persisting applied-preference ledger", err)
	}
	return nil
}
