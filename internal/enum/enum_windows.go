//go:build windows

package enum

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows/registry"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// Provider enumerates adapters through DXGI and enriches them with WMI
// device paths.
type Provider struct {
	log *slog.Logger
}

var _ types.AdapterProvider = (*Provider)(nil)

// NewProvider returns the live adapter provider. A nil logger silences it.
func NewProvider(log *slog.Logger) *Provider {
	return &Provider{log: logutil.OrNop(log)}
}

// Adapters reports every adapter DXGI knows about, in DXGI order. WMI and
// registry enrichment failures degrade to synthesized device paths and
// empty location hints; only DXGI itself failing is an error.
func (p *Provider) Adapters() ([]types.RawAdapter, error) {
	descs, err := dxgiAdapters()
	if err != nil {
		return nil, types.NewError(types.ErrKindUnsupported, "dxgi adapter enumeration failed", err)
	}

	out := make([]types.RawAdapter, 0, len(descs))
	for _, d := range descs {
		out = append(out, types.RawAdapter{
			Name:      d.name(),
			VRAMBytes: uint64(d.DedicatedVideoMemory),
			LUID:      packLUID(d.AdapterLuid),
			VendorID:  d.VendorID,
			DeviceID:  d.DeviceID,
			SubsysID:  d.SubSysID,
			Software:  d.Flags&dxgiAdapterFlagSoftware != 0,
		})
	}

	p.enrichFromWMI(out)

	for i := range out {
		if out[i].Software {
			continue
		}
		if out[i].PNPID == "" && out[i].VendorID != 0 {
			out[i].PNPID = synthesizePNPID(out[i])
		}
		if out[i].Location == "" && out[i].PNPID != "" {
			out[i].Location = deviceLocation(out[i].PNPID)
		}
	}
	return out, nil
}

// enrichFromWMI pairs DXGI adapters with Win32_VideoController rows; see
// pairControllers for the matching rules. A failed query degrades to
// synthesized device paths.
func (p *Provider) enrichFromWMI(adapters []types.RawAdapter) {
	rows, err := queryVideoControllers()
	if err != nil {
		p.log.Warn("wmi video controller query failed", "error", err)
		return
	}
	pairControllers(adapters, rows)
}

// synthesizePNPID builds a PCI-style device path from DXGI codes when WMI
// offers no instance path. It carries the VEN/DEV/SUBSYS codes a targeted
// preference needs, but no instance suffix.
func synthesizePNPID(r types.RawAdapter) string {
	return fmt.Sprintf(`PCI\VEN_%04X&DEV_%04X&SUBSYS_%08X`, r.VendorID, r.DeviceID, r.SubsysID)
}

// deviceLocation reads the bus location a full instance path is registered
// under. Synthesized paths have no Enum key and yield "".
func deviceLocation(pnpID string) string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SYSTEM\CurrentControlSet\Enum\`+pnpID, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	raw, _, err := k.GetStringValue("LocationInformation")
	if err != nil {
		return ""
	}
	return parseLocationInformation(raw)
}
