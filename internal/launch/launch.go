// Package launch resolves launch targets and spawns the external processes
// one-time runs monitor. It is the only package that touches os/exec; the
// transaction core sees just the Launcher and Process interfaces.
package launch

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
)

// ExecLauncher starts real OS processes. The child inherits this process's
// stdio, so interactive targets behave as if launched directly.
type ExecLauncher struct {
	log *slog.Logger
}

var _ types.Launcher = (*ExecLauncher)(nil)

// NewExecLauncher returns the real launcher. A nil logger silences it.
func NewExecLauncher(log *slog.Logger) *ExecLauncher {
	return &ExecLauncher{log: logutil.OrNop(log)}
}

// Start spawns the target and returns immediately; the caller owns the
// wait. There is no context: the monitored process exiting is the only
// cancellation path a one-time run supports.
func (l *ExecLauncher) Start(target types.Target) (types.Process, error) {
	cmd := exec.Command(target.ExePath, target.Args...)
	cmd.Dir = target.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	l.log.Debug("process spawned", "exe", target.ExePath, "pid", cmd.Process.Pid, "dir", target.Dir)
	return &execProcess{cmd: cmd}, nil
}

// execProcess adapts exec.Cmd to the Process interface.
type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) PID() int { return p.cmd.Process.Pid }

// Wait blocks until the process exits. A non-zero exit status is a normal
// result, not an error; only a wait that cannot determine the status at
// all reports one.
func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
