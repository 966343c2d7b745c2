// Package enum discovers the machine's physical display adapters.
//
// # Overview
//
// On Windows, DXGI is the source of record: IDXGIFactory1::EnumAdapters1
// reports adapters in the operating system's own order, with the 64-bit
// adapter LUID, PCI identification codes, the dedicated-VRAM figure, and a
// flag marking software rasterizers. DXGI does not expose the plug-and-play
// device instance path, so each adapter is enriched with the matching
// Win32_VideoController row from WMI; when no row matches, a PCI-style path
// is synthesized from the DXGI codes.
//
// Other platforms have no DirectX adapter registry to pin preferences in,
// so there the provider reports an unsupported-platform error and callers
// degrade to class-only preferences.
//
// # Ordering
//
// The adapter order returned here is the order DXGI reports, which is the
// order the preference store's duplicate-disambiguation indices are defined
// over. Nothing in this package reorders adapters.
package enum
