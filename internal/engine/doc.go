// Package engine provides the document editing engine.
//
// The engine holds the current document and selection and applies
// structural commands to them. Commands are plain functions over
// transactions, so every function in the treeops package can be applied
// directly or wrapped in a closure:
//
//	e := engine.New(doc)
//	applied, err := e.Apply(treeops.RemoveNodeBefore)
//	applied, err = e.Apply(func(tr *transform.Transaction) *transform.Transaction {
//		return treeops.SafeInsert(tr, table)
//	})
//
// A command that does not apply returns its input transaction; Apply then
// reports false and leaves the state alone. ApplyAll chains several
// commands into a single commit.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock and
// return immutable values, so a document obtained from Doc stays valid
// while other goroutines apply commands.
//
// # Change Notification
//
// Subscribe registers observers for committed changes. Observers run after
// the engine lock is released, so they may read from or apply commands to
// the engine that notified them.
package engine
