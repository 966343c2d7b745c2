package launch

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dxkit/gpupref/pkg/types"
)

// Resolve turns a user-supplied path into the launch triple the transaction
// core consumes. Bare names search PATH like a shell would; everything else
// is made absolute and must name a regular file, with a .exe suffix tried
// for extensionless paths. An empty dir defaults to the executable's
// directory.
//
// Shortcuts, batch files, and store URLs are not interpreted here.
func Resolve(rawPath string, args []string, dir string) (types.Target, error) {
	exe, err := resolvePath(rawPath)
	if err != nil {
		return types.Target{}, err
	}
	if dir == "" {
		dir = filepath.Dir(exe)
	}
	return types.Target{ExePath: exe, Args: args, Dir: dir}, nil
}

func resolvePath(raw string) (string, error) {
	if raw == "" {
		return "", types.NewError(types.ErrKindNotFound, "empty executable path", nil)
	}
	if filepath.Base(raw) == raw {
		if p, err := exec.LookPath(raw); err == nil {
			return filepath.Abs(p)
		}
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", types.NewError(types.ErrKindNotFound, "resolving "+raw, err)
	}
	if isRegularFile(abs) {
		return abs, nil
	}
	if filepath.Ext(abs) == "" {
		if withExt := abs + ".exe"; isRegularFile(withExt) {
			return withExt, nil
		}
	}
	return "", types.NewError(types.ErrKindNotFound, raw+" does not exist or is not a file", nil)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
