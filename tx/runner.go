package tx

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dxkit/gpupref/internal/logutil"
	"github.com/dxkit/gpupref/pkg/types"
	"github.com/dxkit/gpupref/pref"
)

// runState names the stages of one one-time run.
type runState int

const (
	stateIdle runState = iota
	stateCaptured
	stateApplied
	stateRunning
	stateReverting
	stateDone
	stateFailed
)

func (s runState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCaptured:
		return "captured"
	case stateApplied:
		return "applied"
	case stateRunning:
		return "running"
	case stateReverting:
		return "reverting"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// run tracks and logs one transaction's progress through the state machine.
type run struct {
	log   *slog.Logger
	state runState
}

func (r *run) to(next runState) {
	r.log.Debug("run state", "from", r.state, "to", next)
	r.state = next
}

// LivenessProbe reports whether a PID names a live process. The default is
// the platform probe; tests inject their own.
type LivenessProbe func(pid int) bool

// RunRequest describes one one-time run. ExePath must already be resolved;
// the orchestrator does not interpret shortcuts or search PATH.
type RunRequest struct {
	ExePath  string
	Identity types.GpuIdentity
	Args     []string
	Dir      string
}

// Orchestrator coordinates the preference store, the revert journal, the
// applied ledger, and process launches. Every collaborator is injected;
// there is no ambient global state.
//
// Orchestrator is safe for concurrent use. Operations against the same
// executable path serialize; distinct paths proceed independently.
type Orchestrator struct {
	store    types.Store
	journal  *Journal
	applied  *AppliedTracker
	launcher types.Launcher
	alive    LivenessProbe
	log      *slog.Logger

	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger directs orchestrator diagnostics to l.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.log = logutil.OrNop(l) }
}

// WithLivenessProbe overrides the platform process probe.
func WithLivenessProbe(probe LivenessProbe) OrchestratorOption {
	return func(o *Orchestrator) { o.alive = probe }
}

// NewOrchestrator wires an orchestrator over its four collaborators.
func NewOrchestrator(store types.Store, journal *Journal, applied *AppliedTracker, launcher types.Launcher, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		journal:  journal,
		applied:  applied,
		launcher: launcher,
		alive:    processAlive,
		log:      logutil.Nop(),
		paths:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunOnce applies identity's preference to req.ExePath, runs the process to
// completion, and restores the pre-run preference. It returns the process
// exit code.
//
// The protocol:
//  1. Capture the current store value ("NONE" when absent)
//  2. Journal a pending revert
//  3. Write the one-time preference
//  4. Spawn the process, journal its PID
//  5. Wait for exit
//  6. Revert the store (deferred; runs on every exit path after step 3)
//  7. Drop the journal entry
//
// Failures before the spawn (store write, process start) surface as typed
// errors with the store already restored. Failures after the spawn never
// do: a failed revert is logged, the entry is dropped to avoid a retry
// storm on every startup, and the exit code is still returned.
//
// ctx is honored only before the process starts. There is no timeout: once
// running, the child exiting is the only way forward.
func (o *Orchestrator) RunOnce(ctx context.Context, req RunRequest) (int, error) {
	if !o.store.Supported() {
		return 0, types.ErrStoreUnsupported
	}
	unlock := o.lockPath(req.ExePath)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	log := o.log.With("exe", req.ExePath, "gpu", req.Identity.DisplayName())
	r := &run{log: log, state: stateIdle}

	// Step 1: capture the pre-run value.
	original := types.NoPreference
	if v, ok := o.store.Get(req.ExePath); ok {
		original = v
	}
	r.to(stateCaptured)

	// Step 2: journal the pending revert before touching the store. From
	// here on a crash is recoverable.
	entry := types.PendingRevertEntry{
		ID:         uuid.New(),
		ExePath:    req.ExePath,
		Original:   original,
		CapturedAt: time.Now(),
	}
	if err := o.journal.Append(entry); err != nil {
		return 0, err
	}

	// Step 3: apply the one-time preference.
	value := pref.Encode(req.Identity, types.ClassFor(req.Identity))
	if err := o.store.Set(req.ExePath, value); err != nil {
		// Nothing was applied; drop the entry and abort before spawning.
		o.removeEntry(entry)
		return 0, err
	}
	r.to(stateApplied)

	// The deferred revert covers every exit from here on: normal return,
	// spawn failure, wait error, or a panic while monitoring.
	defer func() {
		r.to(stateReverting)
		if err := o.revert(entry); err != nil {
			r.to(stateFailed)
			log.Error("one-time revert failed; preference remains applied",
				"id", entry.ID, "error", err)
		} else {
			r.to(stateDone)
		}
		o.removeEntry(entry)
	}()

	// Step 4: spawn and journal the PID.
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	proc, err := o.launcher.Start(types.Target{ExePath: req.ExePath, Args: req.Args, Dir: req.Dir})
	if err != nil {
		return 0, types.NewError(types.ErrKindProcessStart, "starting "+req.ExePath, err)
	}
	if err := o.journal.UpdateProcessID(req.ExePath, entry.CapturedAt, proc.PID()); err != nil {
		log.Warn("could not journal child pid", "pid", proc.PID(), "error", err)
	}
	r.to(stateRunning)
	log.Info("process started", "pid", proc.PID(), "preference", value)

	// Step 5: wait for exit.
	code, err := proc.Wait()
	if err != nil {
		log.Warn("exit status unavailable", "pid", proc.PID(), "error", err)
	}
	log.Info("process exited", "pid", proc.PID(), "exit_code", code)
	return code, nil
}

// SetDefault pins identity's preference for exePath permanently, recording
// the pre-pin value in the applied ledger for a later reset. No journal
// entry is made; the pin is meant to survive crashes.
//
// Re-pinning a tracked path keeps the earliest recorded original, so a
// reset restores the true pre-pin state rather than an intermediate pin.
func (o *Orchestrator) SetDefault(exePath string, id types.GpuIdentity) error {
	if !o.store.Supported() {
		return types.ErrStoreUnsupported
	}
	unlock := o.lockPath(exePath)
	defer unlock()

	original := types.NoPreference
	if v, ok := o.store.Get(exePath); ok {
		original = v
	}
	value := pref.Encode(id, types.ClassFor(id))
	if err := o.store.Set(exePath, value); err != nil {
		return err
	}
	if err := o.applied.Record(exePath, original, value); err != nil {
		// The pin itself succeeded; it just won't be covered by a reset.
		o.log.Warn("pin applied but not tracked for reset", "exe", exePath, "error", err)
	}
	o.log.Info("preference pinned", "exe", exePath, "gpu", id.DisplayName(), "preference", value)
	return nil
}

// Unpin removes any pinned preference for exePath and drops its ledger
// record. It reports whether a store entry existed.
func (o *Orchestrator) Unpin(exePath string) (bool, error) {
	if !o.store.Supported() {
		return false, types.ErrStoreUnsupported
	}
	unlock := o.lockPath(exePath)
	defer unlock()

	existed, err := o.store.Remove(exePath)
	if err != nil {
		return false, err
	}
	if _, err := o.applied.Remove(exePath); err != nil {
		o.log.Warn("could not drop applied-ledger record", "exe", exePath, "error", err)
	}
	if existed {
		o.log.Info("preference unpinned", "exe", exePath)
	}
	return existed, nil
}

// CleanupPendingReverts replays reverts left behind by crashed or killed
// runs. An entry whose PID no longer names a live process is reverted and
// dropped; one with a live process is left for a later pass. A revert that
// fails is logged and its entry dropped anyway, so one broken key cannot
// wedge every future startup. Returns the number of entries cleaned out.
func (o *Orchestrator) CleanupPendingReverts() int {
	entries := o.journal.LoadAll()
	if len(entries) == 0 {
		return 0
	}
	cleaned := 0
	for _, e := range entries {
		if o.alive(e.ProcessID) {
			o.log.Info("pending revert still owned by live process",
				"id", e.ID, "exe", e.ExePath, "pid", e.ProcessID)
			continue
		}
		if err := o.revert(e); err != nil {
			o.log.Error("startup revert failed; dropping entry anyway",
				"id", e.ID, "exe", e.ExePath, "error", err)
		} else {
			o.log.Info("recovered pending revert",
				"id", e.ID, "exe", e.ExePath, "restored", e.Original)
		}
		o.removeEntry(e)
		cleaned++
	}
	return cleaned
}

// ResetAllApplied restores every pin in the applied ledger to its recorded
// original and clears the ledger. Failures are logged and excluded from
// the returned count.
func (o *Orchestrator) ResetAllApplied() int {
	pins := o.applied.LoadAll()
	if len(pins) == 0 {
		return 0
	}
	restored := 0
	for _, p := range pins {
		if err := o.resetOne(p); err != nil {
			o.log.Error("could not restore original preference", "exe", p.ExePath, "error", err)
			continue
		}
		o.log.Info("restored original preference", "exe", p.ExePath, "original", p.Original)
		restored++
	}
	if err := o.applied.Clear(); err != nil {
		o.log.Warn("could not clear applied ledger", "error", err)
	}
	return restored
}

func (o *Orchestrator) resetOne(p types.AppliedPreference) error {
	if p.Original == types.NoPreference {
		_, err := o.store.Remove(p.ExePath)
		return err
	}
	return o.store.Set(p.ExePath, p.Original)
}

// revert restores the store to the captured value: delete when the
// executable had no preference, overwrite otherwise.
func (o *Orchestrator) revert(entry types.PendingRevertEntry) error {
	if entry.Original == types.NoPreference {
		if _, err := o.store.Remove(entry.ExePath); err != nil {
			return types.NewError(types.ErrKindRevert, "removing one-time preference", err)
		}
		return nil
	}
	if err := o.store.Set(entry.ExePath, entry.Original); err != nil {
		return types.NewError(types.ErrKindRevert, "restoring original preference", err)
	}
	return nil
}

func (o *Orchestrator) removeEntry(entry types.PendingRevertEntry) {
	if err := o.journal.Remove(entry.ExePath, entry.CapturedAt); err != nil {
		o.log.Warn("could not remove journal entry", "id", entry.ID, "error", err)
	}
}

// lockPath serializes operations against one executable path, so a second
// run cannot capture another run's temporary value as its "original". Keys
// are case-folded cleaned paths. The map only grows, bounded by the
// distinct paths one process touches.
func (o *Orchestrator) lockPath(exePath string) func() {
	key := strings.ToLower(filepath.Clean(exePath))
	o.mu.Lock()
	l, ok := o.paths[key]
	if !ok {
		l = &sync.Mutex{}
		o.paths[key] = l
	}
	o.mu.Unlock()
	l.Lock()
	return l.Unlock
}
