// Package changelog implements the append-only change log and the
// derived-state reconstruction built on top of it.
//
// # Entry Format
//
// Every logged change is one textual entry appended to a single
// growing blob:
//
//	## UPDATE Task 86c2kq1tb - 2024-06-01T10:00:00.000Z
//	  - status: "IN PROGRESS"
//	  - time_estimate: "2h"
//	Comment: picked up after standup
//
// The format is a de facto wire contract: the parser reads entries
// written by any past version of the writer, so changes here must
// remain byte-compatible or old history silently stops reconstructing.
//
// # Reconstruction
//
// Nothing besides the log records when a task entered the in-progress
// state. ReconstructInProgress recovers that fact per task by scanning
// entry headers newest-first:
//
//   - A MANUAL_UPDATE entry carrying an inProgressSince field resolves
//     the task to the asserted timestamp. This is the operator override
//     and outranks all older evidence by scan order.
//
//   - A CREATE or UPDATE entry whose status field equals "IN PROGRESS"
//     resolves the task to the entry's header timestamp.
//
//   - Any other entry is passed over; an older entry for the same task
//     remains eligible.
//
// Position in the blob reflects write order and is the tie-breaker of
// record; header timestamps may interleave when writers race. Entries
// the header pattern cannot match (truncated or malformed text) are
// skipped, never an error, and tasks without evidence are simply
// absent from the result.
package changelog
