// Package types defines the data model and contracts for pinning a GPU
// preference to an executable: adapter identities, preference classes, the
// preference store abstraction, and the pending-revert records used by the
// one-time-run transaction protocol.
//
// This package only exposes interfaces and core types. Implementations live
// elsewhere: the live registry store and platform adapter enumeration are
// internal and build-tagged, and in-memory fakes back the tests.
//
// Design goals:
//   - Expected absence is a (value, ok) pair, never an error.
//   - Typed errors with stable categories (not-found/unsupported/store/...).
//   - Small value types that serialize cleanly to JSON for the journal and
//     snapshot files.
//
// This package has no dependencies beyond the standard library and
// github.com/google/uuid.
package types
