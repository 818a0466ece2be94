// Package optimistic applies local changes to the mirror before the remote
// endpoint confirms them, and rolls them back when it does not.
//
// # State machine
//
// Each mutation moves through
//
//	Idle ──apply──▶ Pending ──ack──▶ Confirmed
//	                   │
//	                   └──failure──▶ Reverted
//
// Confirmed and Reverted are terminal; there is no retry transition. The
// observer is notified once the mutation is Pending and once it resolves, so
// a view re-renders twice per mutation.
//
// # Rollback policies
//
//   - CreateVideo appends the record (status Reviewed) and on failure removes
//     the records carrying its temporary id.
//   - DeleteVideo removes the record and on failure appends the exact removed
//     value at the end of the collection.
//   - UpdateStatus sets the new status and on failure restores the value that
//     was present when it was applied.
//   - UpdateProfileNames is not optimistic: the labels reach the mirror only
//     after the endpoint acknowledges them.
//
// # Ordering
//
// Mutations that share a key (a video id, or a user/platform pair for
// profile names) are serialized: the second waits until the first has
// resolved before it applies. Mutations with different keys run
// independently and may resolve in any order.
package optimistic
