// Package buffer provides the editable text buffer behind a single-line text
// field: the text content, the cursor and selection anchor, and the bounded
// replace algorithm every mutation funnels through.
//
// The buffer package provides:
//
//   - Character (rune) addressed content with an optional maximum length
//   - Anchor/head selection tracking via cursor.Selection
//   - A single clamping replace primitive (ReplaceRange) that the higher level
//     edits (ReplaceSelection, EraseSelection, InsertText, DeleteText) use
//   - Cursor navigation that either collapses or extends the selection
//   - Change values describing each edit, so the owner can notify listeners
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello world", buffer.WithMaxLength(16))
//
//	buf.SetSelection(0, 5)         // select "hello"
//	buf.ReplaceSelection("HI")     // "HI world", cursor at 2
//
//	buf.MoveEnd(false)
//	buf.InsertText("!!!!!!!!!!!!") // truncated to fit the limit
//
// Capacity:
//
// A negative maximum length (NoLimit) means unbounded. When a limit is set,
// text that does not fit is silently truncated; exceeding the limit is never
// reported as an error.
//
// Error Handling:
//
// Offsets passed to ReplaceRange are clamped when a sane interpretation
// exists. When clamping cannot produce a valid edit the buffer is left
// untouched, a warning is written to the configured Logger, and
// ErrRangeInvalid is returned.
//
// Thread Safety:
//
// A Buffer is owned by a single UI loop and is not safe for concurrent use.
// It holds no locks.
package buffer
