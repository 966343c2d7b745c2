//go:build !windows

package regstore

import (
	"log/slog"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// Store is the non-Windows placeholder: reads see an empty store and every
// mutation returns ErrStoreUnsupported.
type Store struct {
	log *slog.Logger
}

var _ types.Store = (*Store)(nil)

// New returns the placeholder store. A nil logger silences it.
func New(log *slog.Logger) *Store {
	return &Store{log: logutil.OrNop(log)}
}

func (s *Store) Get(string) (string, bool) { return "", false }

func (s *Store) Set(string, string) error { return types.ErrStoreUnsupported }

func (s *Store) Remove(string) (bool, error) { return false, types.ErrStoreUnsupported }

func (s *Store) List() (map[string]string, error) { return map[string]string{}, nil }

func (s *Store) Supported() bool { return false }
