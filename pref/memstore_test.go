package pref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CaseInsensitiveKeys(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set(`C:\Games\Game.exe`, "GpuPreference=2;"))

	v, ok := s.Get(`c:\games\game.exe`)
	require.True(t, ok)
	assert.Equal(t, "GpuPreference=2;", v)

	// Overwriting through a differently-cased key keeps one entry.
	require.NoError(t, s.Set(`C:\GAMES\GAME.EXE`, "GpuPreference=1;"))
	assert.Equal(t, 1, s.Len())

	v, _ = s.Get(`C:\Games\Game.exe`)
	assert.Equal(t, "GpuPreference=1;", v)
}

func TestMemoryStore_RemoveAndList(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set(`C:\a.exe`, "GpuPreference=0;"))
	require.NoError(t, s.Set(`C:\b.exe`, "GpuPreference=2;"))

	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "GpuPreference=2;", all[`C:\b.exe`])

	removed, err := s.Remove(`C:\A.EXE`)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(`C:\A.EXE`)
	require.NoError(t, err)
	assert.False(t, removed, "second remove should report no entry")

	_, ok := s.Get(`C:\a.exe`)
	assert.False(t, ok)
}
