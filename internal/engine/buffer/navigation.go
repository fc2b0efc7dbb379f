package buffer

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/textbox/internal/engine/cursor"
)

// Selection Queries

// HasSelection returns true if the cursor and anchor differ.
func (b *Buffer) HasSelection() bool {
	return !b.sel.IsEmpty()
}

// SelectedText returns the selected text, or "" when nothing is selected.
func (b *Buffer) SelectedText() string {
	if b.sel.IsEmpty() {
		return ""
	}
	r := b.sel.Clamp(len(b.text)).Range()
	return string(b.text[r.Start:r.End])
}

// SelectAll selects the whole content with the cursor at the end.
func (b *Buffer) SelectAll() {
	b.sel = cursor.NewSelection(0, len(b.text))
	b.stale = true
}

// SetSelection places the anchor and cursor, clamping both into the text.
func (b *Buffer) SetSelection(anchor, head int) {
	b.sel = cursor.NewSelection(anchor, head).Clamp(len(b.text))
	b.stale = true
}

// Cursor Navigation
//
// Each movement computes a new cursor position inside [0, Len()]. When
// extend is false the anchor follows the cursor; when it is true the anchor
// stays put and the selection grows or shrinks. Moving past either end is a
// no-op for the cursor.

// MoveLeft moves the cursor one character (or grapheme cluster) left.
func (b *Buffer) MoveLeft(extend bool) {
	b.moveHead(b.prevBoundary(b.sel.Head), extend)
}

// MoveRight moves the cursor one character (or grapheme cluster) right.
func (b *Buffer) MoveRight(extend bool) {
	b.moveHead(b.nextBoundary(b.sel.Head), extend)
}

// MoveHome moves the cursor to the start of the text.
func (b *Buffer) MoveHome(extend bool) {
	b.moveHead(0, extend)
}

// MoveEnd moves the cursor to the end of the text.
func (b *Buffer) MoveEnd(extend bool) {
	b.moveHead(len(b.text), extend)
}

// MoveWordLeft moves the cursor to the start of the previous word.
func (b *Buffer) MoveWordLeft(extend bool) {
	pos := min(b.sel.Head, len(b.text))
	for pos > 0 && !isWordRune(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && isWordRune(b.text[pos-1]) {
		pos--
	}
	b.moveHead(pos, extend)
}

// MoveWordRight moves the cursor past the end of the next word.
func (b *Buffer) MoveWordRight(extend bool) {
	pos := max(b.sel.Head, 0)
	n := len(b.text)
	for pos < n && !isWordRune(b.text[pos]) {
		pos++
	}
	for pos < n && isWordRune(b.text[pos]) {
		pos++
	}
	b.moveHead(pos, extend)
}

func (b *Buffer) moveHead(head int, extend bool) {
	n := len(b.text)
	head = min(max(head, 0), n)

	next := b.sel.MoveTo(head)
	if extend {
		next = b.sel.Extend(head).Clamp(n)
	}
	if !next.Equals(b.sel) {
		b.sel = next
		b.stale = true
	}
}

func (b *Buffer) prevBoundary(pos int) int {
	if pos <= 0 {
		return 0
	}
	pos = min(pos, len(b.text))
	if !b.graphemes {
		return pos - 1
	}
	prev := 0
	for _, off := range b.clusterStarts() {
		if off >= pos {
			break
		}
		prev = off
	}
	return prev
}

func (b *Buffer) nextBoundary(pos int) int {
	n := len(b.text)
	if pos >= n {
		return n
	}
	pos = max(pos, 0)
	if !b.graphemes {
		return pos + 1
	}
	for _, off := range b.clusterStarts() {
		if off > pos {
			return off
		}
	}
	return n
}

// clusterStarts returns the rune offset of every grapheme cluster boundary,
// including the end of the text.
func (b *Buffer) clusterStarts() []int {
	offsets := []int{0}
	pos := 0
	g := uniseg.NewGraphemes(string(b.text))
	for g.Next() {
		pos += len(g.Runes())
		offsets = append(offsets, pos)
	}
	return offsets
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
