package buffer

import (
	"errors"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/textbox/internal/engine/cursor"
)

// NoLimit is the maximum length of an unbounded buffer.
const NoLimit = -1

// Errors returned by buffer operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
)

// Logger receives warnings about edits the buffer had to abandon.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Buffer holds editable text with a cursor and a selection anchor.
//
// Invariants after every operation:
//   - 0 <= Cursor() <= Len() and 0 <= Anchor() <= Len()
//   - Len() <= MaxLength() when MaxLength() >= 0
type Buffer struct {
	text       []rune
	sel        cursor.Selection
	maxLength  int
	revisionID RevisionID
	graphemes  bool
	stale      bool
	logger     Logger
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		maxLength:  NoLimit,
		revisionID: NewRevisionID(),
		logger:     nopLogger{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content.
// The content is truncated to the maximum length and the cursor is placed
// at the end.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.SetText(s)
	return b
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() int {
	return b.sel.Head
}

// Anchor returns the selection anchor.
func (b *Buffer) Anchor() int {
	return b.sel.Anchor
}

// Selection returns the current selection.
func (b *Buffer) Selection() cursor.Selection {
	return b.sel
}

// MaxLength returns the character limit, or NoLimit.
func (b *Buffer) MaxLength() int {
	return b.maxLength
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// GraphemeNavigation reports whether left/right step over grapheme clusters.
func (b *Buffer) GraphemeNavigation() bool {
	return b.graphemes
}

// NeedsLayout reports whether the cursor or selection moved since the
// presentation layer last called MarkLaidOut.
func (b *Buffer) NeedsLayout() bool {
	return b.stale
}

// MarkLaidOut clears the layout-stale flag.
func (b *Buffer) MarkLaidOut() {
	b.stale = false
}

// Buffer State

// SetText replaces the whole content, e.g. when loading persisted state.
// Text beyond the maximum length is dropped. The cursor moves to the end.
func (b *Buffer) SetText(s string) {
	runes := []rune(s)
	if b.maxLength >= 0 && len(runes) > b.maxLength {
		runes = runes[:b.maxLength]
	}
	b.text = runes
	b.sel = cursor.NewCursorSelection(len(runes))
	b.revisionID = NewRevisionID()
	b.stale = true
}

// SetMaxLength changes the character limit. A negative value removes it.
// Lowering the limit below the current length truncates the content.
func (b *Buffer) SetMaxLength(n int) {
	if n < 0 {
		b.maxLength = NoLimit
		return
	}
	b.maxLength = n
	if len(b.text) > n {
		b.text = b.text[:n]
		b.sel = b.sel.Clamp(n)
		b.revisionID = NewRevisionID()
		b.stale = true
	}
}

// SetGraphemeNavigation switches left/right movement between single
// characters and whole grapheme clusters.
func (b *Buffer) SetGraphemeNavigation(on bool) {
	b.graphemes = on
}

// IsTextAllowed reports whether appending text would keep the buffer within
// its maximum length. The position does not affect the length policy.
//
// This is advisory; ReplaceSelection enforces the limit by truncation.
func (b *Buffer) IsTextAllowed(text string, at int) bool {
	_ = at
	if b.maxLength < 0 {
		return true
	}
	return len(b.text)+utf8.RuneCountInString(text) <= b.maxLength
}

// remainingCapacity returns how many characters can be inserted after
// removing deleted characters, or -1 when unbounded.
func (b *Buffer) remainingCapacity(deleted int) int {
	if b.maxLength < 0 {
		return -1
	}
	return max(0, b.maxLength-(len(b.text)-deleted))
}
