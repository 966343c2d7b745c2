// Package tx makes one-time GPU preference runs crash-safe.
//
// # Overview
//
// The preference store is single-key atomic but offers no multi-step
// transactions: capturing an executable's current preference and writing a
// new one are two separate operations. A crash between them — or any time
// before the post-run revert — would leave a temporary preference applied
// permanently. This package closes that window with a revert journal and
// an orchestrator that replays unfinished reverts on the next startup.
//
// One-time run protocol (RunOnce):
//  1. Capture the current store value ("NONE" when absent)   → Captured
//  2. Append a PendingRevertEntry to the journal
//  3. Encode and write the new preference to the store       → Applied
//  4. Spawn the process, journal its PID                     → Running
//  5. Block until the process exits, collecting the exit code
//  6. Revert the store to the captured value (deferred)      → Reverting
//  7. Remove the journal entry                               → Done
//
// The revert in step 6 runs in a deferred block, so a panic or error while
// monitoring the process still restores the store.
//
// # Crash Recovery
//
// The journal entry is written BEFORE the store is touched. If the tool
// dies between steps 3 and 7, the entry survives and names the executable,
// the original value, and (after step 4) the child PID. On the next
// startup CleanupPendingReverts loads every entry and checks whether the
// recorded PID still names a live process:
//   - dead (or never spawned, PID 0): revert now, drop the entry
//   - still running: leave the entry for a later pass
//
// A revert that itself fails is logged and the entry is dropped anyway;
// retrying forever would wedge every future startup on one broken key, and
// ResetAllApplied remains as the manual repair path.
//
// # Durability
//
// The journal and the applied-preference ledger are JSON lists, rewritten
// whole on every mutation (entry counts are bounded by in-flight runs).
// Each rewrite goes to a temp file in the same directory, is fsynced, and
// is renamed over the previous file, so readers never observe a torn
// write. An unparsable file loads as an empty list.
//
// # Concurrency
//
// A single in-process mutex guards each file's read-modify-write; it is
// never held across the process wait in step 5. Runs against distinct
// executables proceed concurrently, each owning its own journal entry.
// Runs against the SAME executable serialize on a per-path lock: a second
// run capturing "current" state while a first still has its temporary
// value applied would journal that temporary value as the original and
// corrupt the eventual revert. Cross-process races (two tool instances)
// are not guarded.
//
// There is no timeout and no cooperative cancellation of step 5: killing
// the monitored process is the only way to end a run early. The context
// passed to RunOnce is honored only before the process starts.
package tx
