package enum

import (
	"github.com/dxkit/gpupref/internal/pnp"
	"github.com/dxkit/gpupref/pkg/types"
)

// videoController is the slice of Win32_VideoController this package
// consumes. The query names the class explicitly, so the struct name is
// free to differ.
type videoController struct {
	Name        string
	PNPDeviceID string
}

// pairControllers matches Win32_VideoController rows to DXGI adapters by
// PCI vendor/device code, consuming each row at most once so two boards of
// the same model each get their own instance path. DXGI and WMI need not
// agree on order; for identical models any pairing carries the same
// VEN/DEV/SUBSYS codes. The row's controller name fills in adapters whose
// DXGI description came back empty.
func pairControllers(adapters []types.RawAdapter, rows []videoController) {
	used := make([]bool, len(rows))
	for i := range adapters {
		if adapters[i].Software {
			continue
		}
		for j, row := range rows {
			if used[j] {
				continue
			}
			ids, ok := pnp.Parse(row.PNPDeviceID)
			if !ok {
				continue
			}
			if ids.Vendor == adapters[i].VendorID && ids.Device == adapters[i].DeviceID {
				adapters[i].PNPID = row.PNPDeviceID
				if adapters[i].Name == "" {
					adapters[i].Name = row.Name
				}
				used[j] = true
				break
			}
		}
	}
}
