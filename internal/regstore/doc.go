// Package regstore binds the preference store interface to the per-user
// Windows registry key the DirectX stack reads:
//
//	HKEY_CURRENT_USER\Software\Microsoft\DirectX\UserGpuPreferences
//
// Each value is a REG_SZ named by the absolute executable path. The key
// first shipped in Windows 10 build 17134 (version 1803); on older builds
// and on other platforms Supported reports false and mutations return
// ErrStoreUnsupported without touching anything.
package regstore

// KeyPath is the preference key, relative to HKEY_CURRENT_USER.
const KeyPath = `Software\Microsoft\DirectX\UserGpuPreferences`
