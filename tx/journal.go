package tx

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// Journal is the durable list of pending reverts. Every mutation rewrites
// the whole file under a single in-process mutex; see the package
// documentation for the durability and concurrency rules.
type Journal struct {
	path string
	log  *slog.Logger

	mu sync.Mutex
}

// NewJournal returns a journal backed by the JSON file at path. The file
// need not exist yet. A nil logger silences diagnostics.
func NewJournal(path string, log *slog.Logger) *Journal {
	return &Journal{path: path, log: logutil.OrNop(log)}
}

// Path returns the backing file location.
func (j *Journal) Path() string { return j.path }

// Append adds an entry and persists the new list before returning. Once
// Append returns, a crash at any later point leaves the entry recoverable.
func (j *Journal) Append(e types.PendingRevertEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	list := loadList[types.PendingRevertEntry](j.path, j.log)
	list = append(list, e)
	if err := storeList(j.path, list); err != nil {
		return types.NewError(types.ErrKindStoreWrite, "persisting revert journal", err)
	}
	j.log.Debug("journal entry appended", "id", e.ID, "exe", e.ExePath, "original", e.Original)
	return nil
}

// UpdateProcessID records the spawned PID on the entry keyed by
// (exePath, capturedAt).
func (j *Journal) UpdateProcessID(exePath string, capturedAt time.Time, pid int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	list := loadList[types.PendingRevertEntry](j.path, j.log)
	for i := range list {
		if list[i].ExePath == exePath && list[i].CapturedAt.Equal(capturedAt) {
			list[i].ProcessID = pid
			if err := storeList(j.path, list); err != nil {
				return types.NewError(types.ErrKindStoreWrite, "persisting revert journal", err)
			}
			return nil
		}
	}
	return types.NewError(types.ErrKindState, "journal entry not found", nil)
}

// Remove drops the entry keyed by (exePath, capturedAt). Removing an entry
// that is already gone is not an error.
func (j *Journal) Remove(exePath string, capturedAt time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	list := loadList[types.PendingRevertEntry](j.path, j.log)
	kept := list[:0]
	removed := false
	for _, e := range list {
		if !removed && e.ExePath == exePath && e.CapturedAt.Equal(capturedAt) {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	if err := storeList(j.path, kept); err != nil {
		return types.NewError(types.ErrKindStoreWrite, "persisting revert journal", err)
	}
	return nil
}

// LoadAll returns the journal's current entries.
func (j *Journal) LoadAll() []types.PendingRevertEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return loadList[types.PendingRevertEntry](j.path, j.log)
}

// Clear empties the journal.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := storeList(j.path, []types.PendingRevertEntry{}); err != nil {
		return types.NewError(types.ErrKindStoreWrite, "clearing revert journal", err)
	}
	return nil
}
