package pref

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dxkit/gpupref/internal/pnp"
	"github.com/dxkit/gpupref/pkg/types"
)

// SpecificAdapterSentinel is the GpuPreference value written alongside a
// SpecificAdapter field. It signals "honor SpecificAdapter, ignore class".
const SpecificAdapterSentinel = 1073741824 // 0x40000000

var (
	classPattern    = regexp.MustCompile(`GpuPreference=(\d+)`)
	specificPattern = regexp.MustCompile(`SpecificAdapter=([0-9A-Fa-f]{4})&([0-9A-Fa-f]{4})&([0-9A-Fa-f]{8});`)
)

// Encode renders the preference string for an adapter identity and class,
// using the most specific encoding the identity supports.
//
// Precedence:
//  1. A device path whose VEN_/DEV_ codes extract cleanly yields the
//     specific-adapter form, regardless of whether a LUID is also known.
//  2. A non-zero LUID yields the LUID-qualified form.
//  3. Otherwise the basic class form.
//
// A non-empty device path without extractable codes (generic ROOT\DISPLAY
// drivers) falls through to the LUID or basic form.
func Encode(id types.GpuIdentity, class types.PreferenceClass) string {
	if id.PNPID != "" {
		if ids, ok := pnp.Parse(id.PNPID); ok {
			return fmt.Sprintf("SpecificAdapter=%04X&%04X&%08X;GpuPreference=%d;",
				ids.Vendor, ids.Device, ids.Subsys, SpecificAdapterSentinel)
		}
	}
	if id.LUID != 0 {
		return fmt.Sprintf("GpuPreference=%d;AdapterLuid=0x%08X,0x%08X;",
			class, uint32(id.LUID>>32), uint32(id.LUID))
	}
	return EncodeClass(class)
}

// EncodeClass renders the basic form carrying only a coarse class.
func EncodeClass(class types.PreferenceClass) string {
	return fmt.Sprintf("GpuPreference=%d;", class)
}

// Decode extracts the preference class from a stored value for display.
// Malformed input, an absent GpuPreference field, or a value outside the
// three defined classes (including the specific-adapter sentinel) decodes
// to ClassDefault. Decode never recovers the specific-adapter target; use
// DecodeSpecific for that.
func Decode(value string) types.PreferenceClass {
	m := classPattern.FindStringSubmatch(value)
	if m == nil {
		return types.ClassDefault
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return types.ClassDefault
	}
	if c := types.PreferenceClass(n); c.Valid() {
		return c
	}
	return types.ClassDefault
}

// SpecificTarget is the adapter named by a specific-adapter encoding.
type SpecificTarget struct {
	VendorID uint32
	DeviceID uint32
	SubsysID uint32
}

// String renders the target in the on-wire "VVVV&DDDD&SSSSSSSS" form.
func (t SpecificTarget) String() string {
	return fmt.Sprintf("%04X&%04X&%08X", t.VendorID, t.DeviceID, t.SubsysID)
}

// DecodeSpecific recovers the adapter codes from a specific-adapter
// encoding, for listings that want to show which adapter a preference pins.
// ok is false for the basic and LUID forms.
func DecodeSpecific(value string) (SpecificTarget, bool) {
	m := specificPattern.FindStringSubmatch(value)
	if m == nil {
		return SpecificTarget{}, false
	}
	// Capture groups are fixed-width hex, conversions cannot fail.
	v, _ := strconv.ParseUint(m[1], 16, 32)
	d, _ := strconv.ParseUint(m[2], 16, 32)
	s, _ := strconv.ParseUint(m[3], 16, 32)
	return SpecificTarget{VendorID: uint32(v), DeviceID: uint32(d), SubsysID: uint32(s)}, true
}
