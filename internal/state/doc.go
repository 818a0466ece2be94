// Package state holds mamba's local mirror of the remote video records.
//
// # Overview
//
// Store is the in-process copy of everything the endpoint returned: the
// videos, the per-user profile labels and the password reference table. The
// dashboard reads it through Snapshot and the optimistic mutator changes it
// through a handful of small, atomic methods.
//
// # Update Semantics
//
//	// Successful fetch: replace everything
//	store.ReplaceAll(snap)
//	→ Videos, ProfileConfig, Passwords = snap (copied)
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	// Failed fetch: keep old data, record error
//	store.RecordError(err)
//	→ data unchanged
//	→ LastError = err, ConsecutiveFailures++
//
// There is no incremental merge. Between fetches the mirror may diverge from
// the server while optimistic mutations are in flight; each mutation is
// reconciled on its own.
//
// # Concurrency Model
//
// Every method takes the lock for its whole body, so a reader never sees a
// half-applied change. Snapshot deep-copies slices and maps so callers can
// hold on to it while the mirror keeps changing.
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	store := &state.Store{}
package state
