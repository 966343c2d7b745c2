package pref

import (
	"strings"
	"sync"

	"github.com/dxkit/gpupref/pkg/types"
)

// MemoryStore is an in-memory Store with the same case-insensitive key
// semantics as the live registry namespace. It backs tests and the CLI
// dry-run mode.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry // folded path -> entry
}

type memEntry struct {
	path  string // original-case key for listings
	value string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry)}
}

func foldPath(exePath string) string {
	return strings.ToLower(exePath)
}

// Get returns the preference stored for exePath.
func (s *MemoryStore) Get(exePath string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[foldPath(exePath)]
	return e.value, ok
}

// Set stores value under exePath, overwriting any previous entry. The key
// keeps the case of the most recent write.
func (s *MemoryStore) Set(exePath, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[foldPath(exePath)] = memEntry{path: exePath, value: value}
	return nil
}

// Remove deletes the entry for exePath, reporting whether one existed.
func (s *MemoryStore) Remove(exePath string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := foldPath(exePath)
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok, nil
}

// List returns a copy of all entries keyed by their original-case paths.
func (s *MemoryStore) List() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		out[e.path] = e.value
	}
	return out, nil
}

// Supported always reports true.
func (s *MemoryStore) Supported() bool { return true }

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ types.Store = (*MemoryStore)(nil)
