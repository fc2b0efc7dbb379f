package textbox

import (
	"github.com/dshills/textbox/internal/input/key"
)

// HandleKey applies the default key bindings and reports whether the key
// was consumed.
//
//	Left/Right            move by character (Ctrl: by word)
//	Home/Up, End/Down     move to start/end
//	Shift+movement        extend the selection
//	Backspace/Delete      erase (Ctrl: by word)
//	Ctrl+A                select all
//	Ctrl+C, Ctrl+Insert   copy
//	Ctrl+X, Shift+Delete  cut
//	Ctrl+V, Shift+Insert  paste
//	Ctrl+W                erase the previous word
//	Enter                 submit
//
// Printable characters are inserted.
func (tb *TextBox) HandleKey(ev key.Event) bool {
	extend := ev.Extending()
	ctrl := ev.Modifiers.Has(key.ModCtrl)

	switch ev.Key {
	case key.KeyLeft:
		if ctrl {
			tb.buf.MoveWordLeft(extend)
		} else {
			tb.buf.MoveLeft(extend)
		}
	case key.KeyRight:
		if ctrl {
			tb.buf.MoveWordRight(extend)
		} else {
			tb.buf.MoveRight(extend)
		}
	case key.KeyHome, key.KeyUp:
		tb.buf.MoveHome(extend)
	case key.KeyEnd, key.KeyDown:
		tb.buf.MoveEnd(extend)
	case key.KeyBackspace:
		if ctrl {
			tb.DeleteWordBackward()
		} else {
			tb.Backspace()
		}
	case key.KeyDelete:
		switch {
		case extend:
			tb.clipboardCommand("cut", tb.Cut)
		case ctrl:
			tb.DeleteWordForward()
		default:
			tb.Delete()
		}
	case key.KeyInsert:
		switch {
		case extend:
			tb.clipboardCommand("paste", tb.Paste)
		case ctrl:
			tb.clipboardCommand("copy", tb.Copy)
		default:
			return false
		}
	case key.KeyEnter:
		tb.Submit()
	case key.KeyRune:
		return tb.handleRune(ev)
	default:
		return false
	}
	return true
}

func (tb *TextBox) handleRune(ev key.Event) bool {
	if ev.IsChar() {
		tb.Insert(string(ev.Rune))
		return true
	}

	switch {
	case ev.IsCtrlRune('a'):
		tb.SelectAll()
	case ev.IsCtrlRune('c'):
		tb.clipboardCommand("copy", tb.Copy)
	case ev.IsCtrlRune('x'):
		tb.clipboardCommand("cut", tb.Cut)
	case ev.IsCtrlRune('v'):
		tb.clipboardCommand("paste", tb.Paste)
	case ev.IsCtrlRune('w'):
		tb.DeleteWordBackward()
	default:
		return false
	}
	return true
}

// clipboardCommand runs a clipboard operation and logs its failure.
func (tb *TextBox) clipboardCommand(name string, fn func() error) {
	if err := fn(); err != nil {
		tb.logger.Warn("%s failed: %v", name, err)
	}
}
