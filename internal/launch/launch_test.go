package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxkit/gpupref/pkg/types"
)

// TestHelperProcess is not a real test: the launcher tests re-execute the
// test binary with GO_WANT_HELPER_PROCESS set to play the child's role.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT_CODE"))
	os.Exit(code)
}

func helperRequest(t *testing.T, exitCode int) types.Target {
	t.Helper()
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("HELPER_EXIT_CODE", fmt.Sprint(exitCode))
	return types.Target{
		ExePath: os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess$"},
	}
}

func TestExecLauncher_WaitReportsExitCode(t *testing.T) {
	l := NewExecLauncher(nil)

	proc, err := l.Start(helperRequest(t, 0))
	require.NoError(t, err)
	require.Greater(t, proc.PID(), 0)
	code, err := proc.Wait()
	require.NoError(t, err)
	require.Equal(t, 0, code)

	proc, err = l.Start(helperRequest(t, 3))
	require.NoError(t, err)
	code, err = proc.Wait()
	require.NoError(t, err, "a non-zero exit status is a result, not an error")
	require.Equal(t, 3, code)
}

func TestExecLauncher_StartFailure(t *testing.T) {
	l := NewExecLauncher(nil)
	_, err := l.Start(types.Target{ExePath: filepath.Join(t.TempDir(), "missing.exe")})
	require.Error(t, err)
}

// --- resolution ---

func TestResolve_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "game.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o755))

	target, err := Resolve(exe, []string{"-fullscreen"}, "")
	require.NoError(t, err)
	require.Equal(t, exe, target.ExePath)
	require.Equal(t, []string{"-fullscreen"}, target.Args)
	require.Equal(t, dir, target.Dir, "empty dir defaults to the executable's directory")
}

func TestResolve_ExplicitDirWins(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "game.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o755))
	work := t.TempDir()

	target, err := Resolve(exe, nil, work)
	require.NoError(t, err)
	require.Equal(t, work, target.Dir)
}

func TestResolve_AppendsExeSuffix(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "game.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o755))

	target, err := Resolve(filepath.Join(dir, "game"), nil, "")
	require.NoError(t, err)
	require.Equal(t, exe, target.ExePath)
}

func TestResolve_BareNameSearchesPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	target, err := Resolve("tool.exe", nil, "")
	require.NoError(t, err)
	require.Equal(t, exe, target.ExePath)
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.exe"), nil, "")
	require.Error(t, err)
	require.True(t, types.IsKind(err, types.ErrKindNotFound))
}

func TestResolve_DirectoryIsNotExecutable(t *testing.T) {
	_, err := Resolve(t.TempDir(), nil, "")
	require.Error(t, err)
	require.True(t, types.IsKind(err, types.ErrKindNotFound))
}

func TestResolve_Empty(t *testing.T) {
	_, err := Resolve("", nil, "")
	require.Error(t, err)
	require.True(t, types.IsKind(err, types.ErrKindNotFound))
}
