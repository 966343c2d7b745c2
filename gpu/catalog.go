package gpu

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// integratedVRAMCeiling is the final integrated-vs-discrete fallback: parts
// reporting less dedicated VRAM than this are assumed integrated.
const integratedVRAMCeiling = 512 << 20

// Catalog enumerates physical adapters and serves cached identity lists
// until refreshed. It is safe for concurrent use.
type Catalog struct {
	provider types.AdapterProvider
	log      *slog.Logger

	snapshotPath string
	snapshotAge  time.Duration

	mu    sync.Mutex
	list  []types.GpuIdentity
	valid bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger directs catalog diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) { c.log = logutil.OrNop(l) }
}

// WithSnapshot mirrors enumeration results to a JSON file at path and
// serves them from there until Refresh or until the snapshot is older than
// maxAge (zero means no age limit).
func WithSnapshot(path string, maxAge time.Duration) Option {
	return func(c *Catalog) {
		c.snapshotPath = path
		c.snapshotAge = maxAge
	}
}

// NewCatalog builds a catalog over the given provider.
func NewCatalog(provider types.AdapterProvider, opts ...Option) *Catalog {
	c := &Catalog{
		provider: provider,
		log:      logutil.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enumerate returns the adapter identities for this session, serving the
// in-memory result (or a fresh-enough on-disk snapshot) when available.
// Enumeration failure degrades to an empty list; it is logged, never
// returned.
func (c *Catalog) Enumerate() []types.GpuIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enumerateLocked(false)
}

// Refresh discards the in-memory list and any on-disk snapshot, then
// re-enumerates. Callers use it after hardware or driver changes.
func (c *Catalog) Refresh() []types.GpuIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	if c.snapshotPath != "" {
		if err := os.Remove(c.snapshotPath); err != nil && !os.IsNotExist(err) {
			c.log.Warn("could not remove adapter snapshot", "path", c.snapshotPath, "error", err)
		}
	}
	return c.enumerateLocked(true)
}

// Find resolves ref — a zero-based ordinal or an identity ID — against the
// current enumeration.
func (c *Catalog) Find(ref string) (types.GpuIdentity, bool) {
	list := c.Enumerate()
	if n, err := strconv.Atoi(ref); err == nil {
		for _, g := range list {
			if g.Ordinal == n {
				return g, true
			}
		}
		return types.GpuIdentity{}, false
	}
	for _, g := range list {
		if g.ID == ref {
			return g, true
		}
	}
	return types.GpuIdentity{}, false
}

func (c *Catalog) enumerateLocked(force bool) []types.GpuIdentity {
	if c.valid && !force {
		return cloneIdentities(c.list)
	}

	if !force && c.snapshotPath != "" {
		if list, ok := loadSnapshot(c.snapshotPath, c.snapshotAge, c.log); ok {
			c.list = list
			c.valid = true
			c.log.Debug("served adapter list from snapshot", "path", c.snapshotPath, "count", len(list))
			return cloneIdentities(c.list)
		}
	}

	raw, err := c.provider.Adapters()
	if err != nil {
		// GPU selection degrades to class-only preferences; the caller
		// still gets a usable (empty) list.
		c.log.Warn("adapter enumeration unavailable", "error", err)
		c.list = nil
		c.valid = false
		return nil
	}

	c.list = buildIdentities(raw)
	c.valid = true
	c.log.Info("enumerated adapters", "count", len(c.list))

	if c.snapshotPath != "" {
		if err := saveSnapshot(c.snapshotPath, c.list); err != nil {
			c.log.Warn("could not write adapter snapshot", "path", c.snapshotPath, "error", err)
		}
	}
	return cloneIdentities(c.list)
}

// buildIdentities turns raw provider records into classified identities,
// dropping software adapters and assigning duplicate indices.
func buildIdentities(raw []types.RawAdapter) []types.GpuIdentity {
	out := make([]types.GpuIdentity, 0, len(raw))
	for _, r := range raw {
		if r.Software {
			continue
		}
		g := types.GpuIdentity{
			Ordinal:      len(out),
			Name:         r.Name,
			VRAMBytes:    r.VRAMBytes,
			LocationHint: r.Location,
			PNPID:        r.PNPID,
			LUID:         r.LUID,
		}
		g.Vendor = classifyVendor(r)
		g.IsIntegrated = classifyIntegrated(g.Vendor, r.Name, r.VRAMBytes)
		g.ID = identityID(g)
		out = append(out, g)
	}
	assignDuplicateIndices(out)
	return out
}

// assignDuplicateIndices gives every group of same-named adapters a
// contiguous 1..N sequence in ascending ordinal order; singletons keep 0.
func assignDuplicateIndices(list []types.GpuIdentity) {
	counts := make(map[string]int, len(list))
	for _, g := range list {
		counts[g.Name]++
	}
	next := make(map[string]int, len(counts))
	for i := range list {
		if counts[list[i].Name] < 2 {
			continue
		}
		next[list[i].Name]++
		list[i].DuplicateIndex = next[list[i].Name]
	}
}

// identityID derives the session-stable opaque ID: LUID when known, else
// the device path, else an ordinal/name digest.
func identityID(g types.GpuIdentity) string {
	if g.LUID != 0 {
		return fmt.Sprintf("luid-%08x-%08x", uint32(g.LUID>>32), uint32(g.LUID))
	}
	if g.PNPID != "" {
		return g.PNPID
	}
	h := fnv.New32a()
	h.Write([]byte(g.Name))
	return fmt.Sprintf("adapter-%d-%08x", g.Ordinal, h.Sum32())
}

func cloneIdentities(list []types.GpuIdentity) []types.GpuIdentity {
	if list == nil {
		return nil
	}
	return append([]types.GpuIdentity(nil), list...)
}
