// Package treeops provides structural editing commands for document trees.
//
// Every command takes a *transform.Transaction and returns one. When a
// command does not apply (no matching ancestor, no valid insertion point,
// wrong selection variant, content rejected by the schema) it returns the
// very same pointer it was given; when it applies it returns a new
// transaction. Callers detect "nothing changed" by comparing pointers, and
// commands compose by threading the result of one into the next:
//
//	tr := transform.New(doc, transform.WithSelection(sel))
//	tr = treeops.ReplaceParentNodeOfType(tr, quote, schema.NodeType("paragraph"))
//	tr = treeops.RemoveParentNodeOfType(tr, schema.NodeType("blockquote"))
//
// # Ancestor search
//
// Finders walk a position's ancestor chain from the innermost node outward
// and stop at the first match, so the closest ancestor wins no matter the
// order of the types passed in. The root node is never matched.
//
// # Insertion
//
// SafeInsert tries the target position first. Failing that it replaces the
// empty parent block, and then inserts after the nearest
// ancestor whose parent accepts the content. The selection then moves into
// the inserted content.
package treeops
