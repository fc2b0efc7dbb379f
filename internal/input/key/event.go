package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsChar returns true if this is a printable character that should be
// typed into the text.
// Shift is part of the character; Ctrl, Alt and Meta make it a command.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && unicode.IsPrint(e.Rune) &&
		e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// Extending returns true if Shift is held, which turns cursor movement into
// selection growth.
func (e Event) Extending() bool {
	return e.Modifiers.Has(ModShift)
}

// IsCtrlRune returns true if this is Ctrl plus the given letter.
func (e Event) IsCtrlRune(r rune) bool {
	return e.Key == KeyRune && e.Modifiers.Has(ModCtrl) &&
		unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// String returns a Vim-style representation such as "a", "<C-a>",
// "<S-Left>" or "<CR>".
func (e Event) String() string {
	if e.IsChar() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "D")
	}
	if e.Modifiers.Has(ModShift) && e.Key != KeyRune {
		parts = append(parts, "S")
	}

	var name string
	switch e.Key {
	case KeyRune:
		name = strings.ToLower(string(e.Rune))
	case KeyEscape:
		name = "Esc"
	case KeyEnter:
		name = "CR"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	case KeyInsert:
		name = "Ins"
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}
