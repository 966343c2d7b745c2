// Package testutil provides canned adapters and scripted collaborators for
// tests that drive pinning flows without real hardware or child processes.
package testutil

import (
	"sync"

	"github.com/dxkit/gpupref/pkg/types"
)

// StaticProvider is an AdapterProvider serving a fixed record set.
//
// Example:
//
//	p := testutil.NewStaticProvider(testutil.DualAdapters()...)
//	catalog := gpu.NewCatalog(p)
type StaticProvider struct {
	mu    sync.Mutex
	raw   []types.RawAdapter
	err   error
	calls int
}

// NewStaticProvider returns a provider that always serves raw.
func NewStaticProvider(raw ...types.RawAdapter) *StaticProvider {
	return &StaticProvider{raw: raw}
}

// Fail makes subsequent Adapters calls return err. A nil err restores the
// canned records.
func (p *StaticProvider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Adapters implements types.AdapterProvider.
func (p *StaticProvider) Adapters() ([]types.RawAdapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return append([]types.RawAdapter(nil), p.raw...), nil
}

// Calls reports how many times Adapters ran.
func (p *StaticProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// ScriptedLauncher is a Launcher whose processes exit immediately with
// ExitCode. It records every target it started.
type ScriptedLauncher struct {
	ExitCode int
	StartErr error

	mu      sync.Mutex
	targets []types.Target
	nextPID int
}

// Start implements types.Launcher.
func (l *ScriptedLauncher) Start(target types.Target) (types.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.StartErr != nil {
		return nil, l.StartErr
	}
	l.targets = append(l.targets, target)
	l.nextPID++
	return &StubProcess{Pid: 52000 + l.nextPID, Code: l.ExitCode}, nil
}

// Targets returns a copy of every target started so far.
func (l *ScriptedLauncher) Targets() []types.Target {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.Target(nil), l.targets...)
}

// StubProcess is a Process that has already exited.
type StubProcess struct {
	Pid  int
	Code int
	Err  error
}

// PID implements types.Process.
func (p *StubProcess) PID() int { return p.Pid }

// Wait implements types.Process.
func (p *StubProcess) Wait() (int, error) { return p.Code, p.Err }

// DualAdapters returns the classic laptop pair, an integrated Intel part
// followed by a discrete NVIDIA one, in driver enumeration order.
func DualAdapters() []types.RawAdapter {
	return []types.RawAdapter{
		{
			Name:      "Intel(R) UHD Graphics 770",
			PNPID:     `PCI\VEN_8086&DEV_4680&SUBSYS_86941043&REV_0C\3&11583659&0&10`,
			VRAMBytes: 128 << 20,
			LUID:      0x9ABC,
			VendorID:  0x8086,
			DeviceID:  0x4680,
			SubsysID:  0x86941043,
			Location:  "PCI bus 0, device 2, function 0",
		},
		{
			Name:      "NVIDIA GeForce RTX 4070",
			PNPID:     `PCI\VEN_10DE&DEV_2786&SUBSYS_88D11043&REV_A1\4&2EB3AE5&0&0008`,
			VRAMBytes: 12 << 30,
			LUID:      0xA1B2,
			VendorID:  0x10DE,
			DeviceID:  0x2786,
			SubsysID:  0x88D11043,
			Location:  "PCI bus 1, device 0, function 0",
		},
	}
}
