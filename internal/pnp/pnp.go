// Package pnp extracts PCI vendor/device/subsystem codes from platform
// device paths such as
// "PCI\VEN_10DE&DEV_2206&SUBSYS_38971462&REV_A1\4&2283f625&0&0019".
//
// Both the adapter catalog (vendor classification) and the preference codec
// (specific-adapter encoding) parse the same substring, so the logic lives
// here once.
package pnp

import (
	"strconv"
	"strings"
)

// IDs holds the numeric codes extracted from a device path. Subsys is zero
// when the path carries no SUBSYS_ field.
type IDs struct {
	Vendor uint32
	Device uint32
	Subsys uint32
}

// Parse extracts the vendor/device/subsystem codes from path, matching
// case-insensitively. ok is false when the path carries no VEN_/DEV_ pair;
// generic drivers (e.g. ROOT\DISPLAY devices) have no such segment.
func Parse(path string) (IDs, bool) {
	// Fold once so the scan below only deals with the canonical uppercase
	// form registry and WMI paths normally use.
	p := strings.ToUpper(path)
	for off := 0; ; {
		i := strings.Index(p[off:], "VEN_")
		if i < 0 {
			return IDs{}, false
		}
		off += i
		if ids, ok := parseFrom(p[off:]); ok {
			return ids, true
		}
		// Not an id segment (decoy or truncated); resume after the marker.
		off += len("VEN_")
	}
}

// parseFrom decodes the id segment anchored at a VEN_ marker: VEN_ and
// DEV_ are mandatory and adjacent, SUBSYS_ optional.
func parseFrom(s string) (IDs, bool) {
	rest, ven, ok := hexField(s, "VEN_", 4)
	if !ok {
		return IDs{}, false
	}
	rest, dev, ok := hexField(rest, "&DEV_", 4)
	if !ok {
		return IDs{}, false
	}
	ids := IDs{Vendor: ven, Device: dev}
	if _, sub, ok := hexField(rest, "&SUBSYS_", 8); ok {
		ids.Subsys = sub
	}
	return ids, true
}

// hexField consumes marker plus exactly width hex digits from the front of
// s, returning the remainder and the decoded value.
func hexField(s, marker string, width int) (rest string, v uint32, ok bool) {
	if !strings.HasPrefix(s, marker) {
		return s, 0, false
	}
	s = s[len(marker):]
	if len(s) < width {
		return s, 0, false
	}
	n, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil {
		return s, 0, false
	}
	return s[width:], uint32(n), true
}
