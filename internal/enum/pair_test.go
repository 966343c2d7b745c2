package enum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxkit/gpupref/pkg/types"
)

func TestPairControllers_MatchesAcrossOrder(t *testing.T) {
	adapters := []types.RawAdapter{
		{Name: "NVIDIA GeForce RTX 3080", VendorID: 0x10DE, DeviceID: 0x2206},
		{Name: "Intel UHD Graphics 630", VendorID: 0x8086, DeviceID: 0x3E92},
	}
	rows := []videoController{
		{Name: "Intel(R) UHD Graphics 630", PNPDeviceID: `PCI\VEN_8086&DEV_3E92&SUBSYS_86941043&REV_00\3&11583659&0&10`},
		{Name: "NVIDIA GeForce RTX 3080", PNPDeviceID: `PCI\VEN_10DE&DEV_2206&SUBSYS_38971462&REV_A1\4&2283f625&0&0019`},
	}

	pairControllers(adapters, rows)

	require.Equal(t, rows[1].PNPDeviceID, adapters[0].PNPID, "row order must not matter")
	require.Equal(t, rows[0].PNPDeviceID, adapters[1].PNPID)
}

func TestPairControllers_IdenticalModelsConsumeDistinctRows(t *testing.T) {
	adapters := []types.RawAdapter{
		{Name: "NVIDIA GeForce RTX 3060", VendorID: 0x10DE, DeviceID: 0x2503},
		{Name: "NVIDIA GeForce RTX 3060", VendorID: 0x10DE, DeviceID: 0x2503},
	}
	rows := []videoController{
		{Name: "NVIDIA GeForce RTX 3060", PNPDeviceID: `PCI\VEN_10DE&DEV_2503&SUBSYS_88771043&REV_A1\4&2d78ab8f&0&0008`},
		{Name: "NVIDIA GeForce RTX 3060", PNPDeviceID: `PCI\VEN_10DE&DEV_2503&SUBSYS_88771043&REV_A1\4&3f11c2e0&0&0019`},
	}

	pairControllers(adapters, rows)

	require.Equal(t, rows[0].PNPDeviceID, adapters[0].PNPID)
	require.Equal(t, rows[1].PNPDeviceID, adapters[1].PNPID,
		"the second board must get the remaining instance path, not a duplicate")
}

func TestPairControllers_ControllerNameFillsEmptyDescription(t *testing.T) {
	adapters := []types.RawAdapter{
		{VendorID: 0x1002, DeviceID: 0x73BF},
		{Name: "AMD Radeon RX 6800 XT", VendorID: 0x1002, DeviceID: 0x73BF},
	}
	rows := []videoController{
		{Name: "AMD Radeon RX 6800 XT", PNPDeviceID: `PCI\VEN_1002&DEV_73BF&SUBSYS_0E3D1002&REV_C1\6&17f903&0&00000019`},
		{Name: "AMD Radeon RX 6800 XT (WMI)", PNPDeviceID: `PCI\VEN_1002&DEV_73BF&SUBSYS_0E3D1002&REV_C1\6&17f903&0&00000119`},
	}

	pairControllers(adapters, rows)

	require.Equal(t, "AMD Radeon RX 6800 XT", adapters[0].Name,
		"an empty description takes the controller name")
	require.Equal(t, "AMD Radeon RX 6800 XT", adapters[1].Name,
		"a present description is kept")
}

func TestPairControllers_SkipsSoftwareAndUnparsableRows(t *testing.T) {
	adapters := []types.RawAdapter{
		{Name: "Microsoft Basic Render Driver", VendorID: 0x1414, DeviceID: 0x8C, Software: true},
		{Name: "NVIDIA GeForce RTX 3080", VendorID: 0x10DE, DeviceID: 0x2206},
	}
	rows := []videoController{
		{Name: "Microsoft Basic Render Driver", PNPDeviceID: `PCI\VEN_1414&DEV_008C&SUBSYS_00000000&REV_00\0`},
		{Name: "Ghost", PNPDeviceID: `ROOT\DISPLAY\0000`},
		{Name: "NVIDIA GeForce RTX 3080", PNPDeviceID: `PCI\VEN_10DE&DEV_2206&SUBSYS_38971462&REV_A1\4&2283f625&0&0019`},
	}

	pairControllers(adapters, rows)

	require.Empty(t, adapters[0].PNPID, "software adapters are not enriched")
	require.Equal(t, rows[2].PNPDeviceID, adapters[1].PNPID)
}
