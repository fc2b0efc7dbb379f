package buffer

import (
	"fmt"

	"github.com/dshills/textbox/internal/engine/cursor"
)

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeNone    ChangeType = iota // Nothing changed
	ChangeInsert                    // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change describes one applied edit.
type Change struct {
	Type      ChangeType
	Start     int        // Offset where the edit happened
	Removed   string     // Text that was removed
	Inserted  string     // Text that was actually inserted
	Truncated bool       // Inserted text was cut to fit the maximum length
	Revision  RevisionID // Buffer revision after the edit
}

// Changed returns true if the edit modified the content.
func (c Change) Changed() bool {
	return c.Type != ChangeNone
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%d, %q)", c.Start, c.Inserted)
	case ChangeDelete:
		return fmt.Sprintf("Delete(%d, %q)", c.Start, c.Removed)
	case ChangeReplace:
		return fmt.Sprintf("Replace(%d, %q with %q)", c.Start, c.Removed, c.Inserted)
	default:
		return "NoChange"
	}
}

func changeType(removed, inserted int) ChangeType {
	switch {
	case removed == 0 && inserted == 0:
		return ChangeNone
	case removed == 0:
		return ChangeInsert
	case inserted == 0:
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// Write Operations

// ReplaceRange removes length characters at start and inserts text there.
// It returns the text actually inserted.
//
// A negative start is clamped to 0 and the removal is shortened by the
// overhang (to zero when the overhang covers it). A start past the end is
// clamped to the end, and the removal never reads past the end. Inserted
// text is truncated to the remaining capacity.
//
// If the cursor was after the requested start it shifts by the size
// difference of the edit; the anchor then collapses onto the cursor.
//
// A removal length that is still negative after clamping abandons the edit:
// the buffer is unchanged, a warning is logged and ErrRangeInvalid returned.
func (b *Buffer) ReplaceRange(start, length int, text string) (string, error) {
	ch, err := b.replaceRange(start, length, text)
	if err != nil {
		return "", err
	}
	return ch.Inserted, nil
}

func (b *Buffer) replaceRange(start, length int, text string) (Change, error) {
	origStart := start
	n := len(b.text)

	if start < 0 {
		if length <= -start {
			length = 0
		} else {
			length += start
		}
		start = 0
	}
	if start > n {
		start = n
	}
	if length < 0 {
		b.logger.Warn("replace abandoned: length %d, text %q, start %d, replacement %q",
			length, string(b.text), origStart, text)
		return Change{}, fmt.Errorf("%w: length %d at %d", ErrRangeInvalid, length, origStart)
	}
	if length > n-start {
		length = n - start
	}

	ins := []rune(text)
	truncated := false
	if c := b.remainingCapacity(length); c >= 0 && len(ins) > c {
		ins = ins[:c]
		truncated = true
	}

	removed := string(b.text[start : start+length])
	kind := changeType(length, len(ins))

	if kind != ChangeNone {
		next := make([]rune, 0, n-length+len(ins))
		next = append(next, b.text[:start]...)
		next = append(next, ins...)
		next = append(next, b.text[start+length:]...)
		b.text = next
		b.revisionID = NewRevisionID()
	}

	head := b.sel.Head
	if head > origStart {
		head = max(0, head) + len(ins) - length
	}
	b.sel = cursor.NewCursorSelection(head).Clamp(len(b.text))

	return Change{
		Type:      kind,
		Start:     start,
		Removed:   removed,
		Inserted:  string(ins),
		Truncated: truncated,
		Revision:  b.revisionID,
	}, nil
}

// ReplaceSelection replaces the selected text (or inserts at the cursor when
// nothing is selected). Text beyond the remaining capacity is dropped.
// The cursor ends up after the inserted text with no selection.
func (b *Buffer) ReplaceSelection(text string) Change {
	start, end := b.normalizedSelection()
	deleted := end - start

	ins := []rune(text)
	truncated := false
	if c := b.remainingCapacity(deleted); c >= 0 && len(ins) > c {
		ins = ins[:c]
		truncated = true
	}

	ch, err := b.replaceRange(start, deleted, string(ins))
	if err != nil {
		return Change{Start: start, Revision: b.revisionID}
	}
	ch.Truncated = ch.Truncated || truncated

	b.sel = cursor.NewCursorSelection(start + len(ins)).Clamp(len(b.text))
	b.stale = true
	return ch
}

// InsertText is the entry point for typed and pasted text.
// It behaves exactly like ReplaceSelection.
func (b *Buffer) InsertText(text string) Change {
	return b.ReplaceSelection(text)
}

// EraseSelection deletes the selected text and leaves the cursor at the
// start of the former selection.
func (b *Buffer) EraseSelection() Change {
	start, end := b.normalizedSelection()

	ch, err := b.replaceRange(start, end-start, "")
	if err != nil {
		return Change{Start: start, Revision: b.revisionID}
	}

	b.sel = cursor.NewCursorSelection(start)
	b.stale = true
	return ch
}

// DeleteText removes length characters at start.
// It is ReplaceRange with empty replacement text.
func (b *Buffer) DeleteText(start, length int) error {
	_, err := b.ReplaceRange(start, length, "")
	return err
}

// normalizedSelection returns the selection bounds ready for an edit.
// A negative start is read as an offset from the end of the text.
func (b *Buffer) normalizedSelection() (int, int) {
	n := len(b.text)
	start, end := b.sel.Start(), b.sel.End()
	if start < 0 {
		start = max(start, -n) + n
		start = max(start, 0)
	}
	end = max(end, start)
	return start, end
}
