// Package gpu builds stable identities for the physical display adapters
// installed in the machine.
//
// # Overview
//
// The catalog asks a platform AdapterProvider for raw adapter records in
// driver enumeration order, then classifies each record and resolves name
// collisions:
//
//   - Vendor: by PCI vendor code from the device path when present, by
//     display-name heuristics otherwise (generic drivers expose no codes).
//   - Integrated vs discrete: vendor-specific name heuristics (Intel
//     non-Arc parts and AMD APU names are integrated), with a final
//     fallback of "dedicated VRAM below 512 MiB means integrated".
//   - DuplicateIndex: adapters sharing a display name get 1..N in ordinal
//     order so two identical cards remain distinguishable; unique names
//     keep index 0.
//
// Identities are session-stable: they survive catalog caching but are
// rebuilt from scratch on Refresh and carry no meaning across reboots or
// driver reinstalls.
//
// # Caching
//
// Enumeration talks to slow platform APIs (COM, WMI), so the catalog keeps
// the last result in memory and, when configured, mirrors it to an on-disk
// JSON snapshot that later processes can serve without touching the
// platform. Refresh discards both layers and re-enumerates; callers react
// to hardware or driver changes by calling it.
//
// # Degradation
//
// When the platform provider fails entirely the catalog logs the failure
// and returns an empty list. Callers then offer class-only preferences
// instead of adapter-specific ones; nothing errors out.
package gpu
