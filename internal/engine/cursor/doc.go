// Package cursor provides the selection value type used by the text buffer.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor); the direction only matters to callers that
// extend a selection with a modifier key held.
//
// All offsets count characters (runes), not bytes.
//
// Basic usage:
//
//	sel := cursor.NewCursorSelection(3)  // Cursor at offset 3
//	sel = sel.Extend(7)                  // Select [3, 7)
//	r := sel.Range()                     // Range{Start: 3, End: 7}
//	sel = sel.Clamp(5)                   // Selection(3→5)
//
// Selection and Range are immutable value types and safe for concurrent use.
package cursor
