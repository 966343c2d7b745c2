package gpu

import (
	"strings"

	"github.com/dxkit/gpupref/internal/pnp"
	"github.com/dxkit/gpupref/pkg/types"
)

// classifyVendor maps a raw adapter to its vendor. The PCI code from the
// enumeration (or the device path) is authoritative; name heuristics are
// the fallback for generic drivers whose paths carry no codes.
func classifyVendor(r types.RawAdapter) types.Vendor {
	code := r.VendorID
	if code == 0 {
		if ids, ok := pnp.Parse(r.PNPID); ok {
			code = ids.Vendor
		}
	}
	switch code {
	case types.PCIVendorNVIDIA:
		return types.VendorNVIDIA
	case types.PCIVendorAMD:
		return types.VendorAMD
	case types.PCIVendorIntel:
		return types.VendorIntel
	}
	return vendorFromName(r.Name)
}

func vendorFromName(name string) types.Vendor {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, "nvidia", "geforce", "quadro"):
		return types.VendorNVIDIA
	case containsAny(n, "amd", "radeon", "firepro"):
		return types.VendorAMD
	case containsAny(n, "intel", "iris", "uhd graphics", "hd graphics"):
		return types.VendorIntel
	}
	return types.VendorOther
}

// classifyIntegrated decides integrated vs discrete. Vendor identity is
// decisive where a vendor only ships one kind; otherwise the VRAM ceiling
// settles it.
func classifyIntegrated(v types.Vendor, name string, vramBytes uint64) bool {
	n := strings.ToLower(name)
	switch v {
	case types.VendorIntel:
		// Arc boards are Intel's discrete line; every other Intel part
		// offered through this store is processor graphics.
		return !strings.Contains(n, "arc")
	case types.VendorNVIDIA:
		return false
	case types.VendorAMD:
		if amdIntegratedName(n) {
			return true
		}
	}
	return vramBytes > 0 && vramBytes < integratedVRAMCeiling
}

// amdIntegratedName spots APU graphics by their marketing names:
// "AMD Radeon(TM) Graphics", "AMD Radeon(TM) Vega 8 Graphics" and similar.
func amdIntegratedName(n string) bool {
	if strings.Contains(n, "vega") && strings.Contains(n, "graphics") {
		return true
	}
	trimmed := strings.TrimSpace(n)
	return strings.HasSuffix(trimmed, "radeon(tm) graphics") ||
		strings.HasSuffix(trimmed, "radeon graphics")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
