//go:build windows

package regstore

import (
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// minimumBuild is the first Windows 10 build shipping per-application GPU
// preferences (version 1803).
const minimumBuild = 17134

// Store reads and writes the per-user preference key.
type Store struct {
	log *slog.Logger

	once      sync.Once
	supported bool
}

var _ types.Store = (*Store)(nil)

// New returns the live registry-backed store. A nil logger silences it.
func New(log *slog.Logger) *Store {
	return &Store{log: logutil.OrNop(log)}
}

// Supported reports whether this Windows build carries the preference
// mechanism. The version probe runs once.
func (s *Store) Supported() bool {
	s.once.Do(func() {
		major, minor, build := windows.RtlGetNtVersionNumbers()
		s.supported = major > 10 || (major == 10 && build >= minimumBuild)
		if !s.supported {
			s.log.Warn("gpu preference store unavailable on this windows build",
				"major", major, "minor", minor, "build", build, "needs_build", minimumBuild)
		}
	})
	return s.supported
}

// Get returns the stored preference for exePath. Absence and read failures
// are both reported as (="", false).
func (s *Store) Get(exePath string) (string, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, KeyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, _, err := k.GetStringValue(exePath)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set writes the preference value for exePath, creating the key on first
// use.
func (s *Store) Set(exePath, value string) error {
	if !s.Supported() {
		return types.ErrStoreUnsupported
	}
	k, _, err := registry.CreateKey(registry.CURRENT_USER, KeyPath, registry.SET_VALUE)
	if err != nil {
		return types.NewError(types.ErrKindStoreWrite, "opening preference key for writing", err)
	}
	defer k.Close()
	if err := k.SetStringValue(exePath, value); err != nil {
		return types.NewError(types.ErrKindStoreWrite, "writing preference value", err)
	}
	s.log.Debug("preference written", "exe", exePath, "value", value)
	return nil
}

// Remove deletes the preference for exePath, reporting whether one existed.
func (s *Store) Remove(exePath string) (bool, error) {
	if !s.Supported() {
		return false, types.ErrStoreUnsupported
	}
	k, err := registry.OpenKey(registry.CURRENT_USER, KeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, types.NewError(types.ErrKindStoreWrite, "opening preference key for removal", err)
	}
	defer k.Close()
	if err := k.DeleteValue(exePath); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, types.NewError(types.ErrKindStoreWrite, "removing preference value", err)
	}
	s.log.Debug("preference removed", "exe", exePath)
	return true, nil
}

// List returns every stored preference keyed by executable path. A missing
// key is an empty store, not an error.
func (s *Store) List() (map[string]string, error) {
	out := make(map[string]string)
	k, err := registry.OpenKey(registry.CURRENT_USER, KeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return out, nil
		}
		return nil, types.NewError(types.ErrKindStoreWrite, "opening preference key", err)
	}
	defer k.Close()
	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, types.NewError(types.ErrKindStoreWrite, "listing preference values", err)
	}
	for _, name := range names {
		v, _, err := k.GetStringValue(name)
		if err != nil {
			// Value vanished or changed type mid-listing; skip it.
			continue
		}
		out[name] = v
	}
	return out, nil
}
