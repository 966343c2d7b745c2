//go:build !windows

package enum

import (
	"log/slog"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// Provider is the placeholder for platforms without a DirectX adapter
// stack. Enumeration reports an unsupported-platform error; the catalog
// turns that into an empty list and callers fall back to class-only
// preferences.
type Provider struct {
	log *slog.Logger
}

var _ types.AdapterProvider = (*Provider)(nil)

// NewProvider returns the placeholder provider. A nil logger silences it.
func NewProvider(log *slog.Logger) *Provider {
	return &Provider{log: logutil.OrNop(log)}
}

func (p *Provider) Adapters() ([]types.RawAdapter, error) {
	return nil, types.NewError(types.ErrKindUnsupported, "adapter enumeration requires windows", nil)
}
