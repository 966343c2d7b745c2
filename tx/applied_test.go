package tx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxkit/gpupref/pkg/types"
)

func tempTracker(t *testing.T) *AppliedTracker {
	t.Helper()
	return NewAppliedTracker(filepath.Join(t.TempDir(), "applied.json"), nil)
}

func TestAppliedTracker_Record(t *testing.T) {
	tr := tempTracker(t)

	require.NoError(t, tr.Record(`C:\Games\alpha.exe`, types.NoPreference, "GpuPreference=2;"))
	require.NoError(t, tr.Record(`C:\Games\beta.exe`, "GpuPreference=1;", "GpuPreference=2;"))

	pins := tr.LoadAll()
	require.Len(t, pins, 2)
	require.Equal(t, types.NoPreference, pins[0].Original)
	require.Equal(t, "GpuPreference=1;", pins[1].Original)
	require.False(t, pins[0].AppliedAt.IsZero())
}

func TestAppliedTracker_RepinKeepsEarliestOriginal(t *testing.T) {
	tr := tempTracker(t)
	exe := `C:\Games\alpha.exe`

	require.NoError(t, tr.Record(exe, types.NoPreference, "GpuPreference=2;"))

	// Re-pinning passes the CURRENT store value as "original", which is the
	// first pin's output. The ledger must keep the true pre-pin original.
	require.NoError(t, tr.Record(exe, "GpuPreference=2;", "GpuPreference=1;"))

	pins := tr.LoadAll()
	require.Len(t, pins, 1)
	require.Equal(t, types.NoPreference, pins[0].Original)
	require.Equal(t, "GpuPreference=1;", pins[0].Applied)
}

func TestAppliedTracker_RemoveAndClear(t *testing.T) {
	tr := tempTracker(t)

	require.NoError(t, tr.Record(`C:\Games\alpha.exe`, types.NoPreference, "GpuPreference=2;"))
	require.NoError(t, tr.Record(`C:\Games\beta.exe`, types.NoPreference, "GpuPreference=2;"))

	removed, err := tr.Remove(`C:\Games\alpha.exe`)
	require.NoError(t, err)
	require.True(t, removed)
	require.Len(t, tr.LoadAll(), 1)

	removed, err = tr.Remove(`C:\Games\alpha.exe`)
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, tr.Clear())
	require.Empty(t, tr.LoadAll())
}

func TestAppliedTracker_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applied.json")
	require.NoError(t, NewAppliedTracker(path, nil).Record(`C:\Games\alpha.exe`, "GpuPreference=1;", "GpuPreference=2;"))

	pins := NewAppliedTracker(path, nil).LoadAll()
	require.Len(t, pins, 1)
	require.Equal(t, "GpuPreference=1;", pins[0].Original)
}
