// Package transform applies structural edits to documents.
//
// Edits are expressed as Steps. A step applies to exactly one document
// version and reports the positions it changed through a StepMap, which is
// used to carry positions and selections from the old document to the new.
//
// # Transactions
//
// A Transaction wraps a document, a selection and the steps applied so far.
// Transactions are copy-on-write: every editing method returns a new
// *Transaction and leaves its receiver untouched, so callers can tell
// whether an edit happened by comparing pointers:
//
//	next, err := tr.Delete(3, 7)
//	if next == tr {
//	    // nothing changed
//	}
//
// The transaction returned by one call must be the one passed to the next.
// Editing a stale transaction re-derives the edit from its older document
// and drops the steps applied after it.
//
// # Steps
//
//   - ReplaceStep: replaces a range inside one parent with closed content.
//   - SetMarkupStep: changes one node's type, attributes and marks while
//     keeping its children.
//
// A step that would leave a node with invalid content fails with a
// *StepError wrapping ErrStepFailed.
package transform
