package pnp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		want IDs
		ok   bool
	}{
		{
			name: "full path with subsystem",
			path: `PCI\VEN_10DE&DEV_2206&SUBSYS_38971462&REV_A1\4&2283f625&0&0019`,
			want: IDs{Vendor: 0x10DE, Device: 0x2206, Subsys: 0x38971462},
			ok:   true,
		},
		{
			name: "no subsystem field",
			path: `PCI\VEN_8086&DEV_3E92&REV_00\3&11583659&0&10`,
			want: IDs{Vendor: 0x8086, Device: 0x3E92},
			ok:   true,
		},
		{
			name: "lowercase hex",
			path: `pci\ven_1002&dev_73bf&subsys_0e3d1002`,
			want: IDs{Vendor: 0x1002, Device: 0x73BF, Subsys: 0x0E3D1002},
			ok:   true,
		},
		{
			name: "generic root device",
			path: `ROOT\DISPLAY\0000`,
			ok:   false,
		},
		{
			name: "empty",
			path: "",
			ok:   false,
		},
		{
			name: "truncated vendor code",
			path: `PCI\VEN_10D&DEV_2206`,
			ok:   false,
		},
		{
			name: "decoy marker before the real segment",
			path: `USB\VEN_ROOT&HUB\PCI\VEN_10DE&DEV_2206`,
			want: IDs{Vendor: 0x10DE, Device: 0x2206},
			ok:   true,
		},
		{
			name: "marker truncated at end of path",
			path: `PCI\VEN_10`,
			ok:   false,
		},
		{
			name: "subsystem too short to decode",
			path: `PCI\VEN_10DE&DEV_2206&SUBSYS_0E3D`,
			want: IDs{Vendor: 0x10DE, Device: 0x2206},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, ok := Parse(tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}
