// Package pref encodes and decodes the value grammar of the per-executable
// GPU preference store, and provides an in-memory Store implementation.
//
// # Value Grammar
//
// A stored preference is one of three semicolon-terminated forms, from least
// to most specific:
//
//	basic      = "GpuPreference=" class ";"
//	luid       = "GpuPreference=" class ";AdapterLuid=0x" hex8 ",0x" hex8 ";"
//	specific   = "SpecificAdapter=" hex4 "&" hex4 "&" hex8 ";GpuPreference=1073741824;"
//	class      = "0" / "1" / "2"
//
// The basic form selects a coarse class (default / power saving / high
// performance) and leaves adapter choice to the OS. The luid form targets
// one adapter by its 64-bit LUID, split into the upper and lower 32 bits.
// The specific form names the adapter's PCI vendor, device, and subsystem
// codes directly; its GpuPreference carries the sentinel 1073741824
// (0x40000000), which tells the OS to honor SpecificAdapter and ignore the
// class. The specific form is the only one that can tell apart two
// installed adapters of the identical model.
//
// Encode picks the most specific form the identity supports: a device path
// with extractable codes wins over a LUID, which wins over the bare class.
// Decode is best-effort and recovers only the class for display; malformed
// or unknown input decodes to ClassDefault.
package pref
