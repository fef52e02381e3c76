// Package selection provides the selection variants of a document.
//
// Selection model:
//
//   - TextSelection: an anchor/head pair of positions. Anchor is where the
//     selection started; Head is where typing occurs. When Anchor == Head the
//     selection is a cursor.
//   - NodeSelection: one node selected as a unit, addressed by the position
//     directly before it.
//
// Selections are immutable values bound to one document version. After an
// edit they are carried to the new document with Map, which re-validates
// them: a text selection whose head no longer sits in inline content, or a
// node selection whose node was deleted, is replaced by the nearest valid
// selection.
//
// Basic usage:
//
//	sel := selection.Cursor(doc, 3)
//	sel = sel.Map(newDoc, mapping)
//
//	// Find the first cursor position at or after pos.
//	next := selection.FindFrom(doc.Resolve(pos), 1, true)
//
// Thread Safety:
//
// All selection types are immutable value types and safe for concurrent use.
package selection
