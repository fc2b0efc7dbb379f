package textbox

import (
	"strings"

	"github.com/dshills/textbox/internal/engine/buffer"
	"github.com/dshills/textbox/internal/event"
)

// lineBreaks flattens pasted multi-line text onto the single line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Insert types text at the cursor, replacing any selection. The text runs
// through the filter first and is truncated to the remaining capacity.
func (tb *TextBox) Insert(text string) buffer.Change {
	if tb.filter != nil && text != "" {
		filtered, err := tb.filter.Apply(text, tb.buf.Text(), tb.buf.MaxLength())
		if err != nil {
			tb.logger.Warn("input filter failed: %v", err)
			return buffer.Change{}
		}
		if filtered == "" {
			tb.logger.Debug("input filter rejected %q", text)
			return buffer.Change{}
		}
		text = filtered
	}

	ch := tb.buf.InsertText(text)
	if ch.Truncated {
		tb.logger.Debug("insertion truncated to %q at max length %d", ch.Inserted, tb.buf.MaxLength())
	}
	tb.publishChange(ch, true)
	return ch
}

// Backspace erases the selection, or the character before the cursor.
func (tb *TextBox) Backspace() buffer.Change {
	if !tb.buf.HasSelection() {
		tb.buf.MoveLeft(true)
	}
	return tb.erase()
}

// Delete erases the selection, or the character after the cursor.
func (tb *TextBox) Delete() buffer.Change {
	if !tb.buf.HasSelection() {
		tb.buf.MoveRight(true)
	}
	return tb.erase()
}

// DeleteWordBackward erases the selection, or back to the previous word start.
func (tb *TextBox) DeleteWordBackward() buffer.Change {
	if !tb.buf.HasSelection() {
		tb.buf.MoveWordLeft(true)
	}
	return tb.erase()
}

// DeleteWordForward erases the selection, or up to the next word end.
func (tb *TextBox) DeleteWordForward() buffer.Change {
	if !tb.buf.HasSelection() {
		tb.buf.MoveWordRight(true)
	}
	return tb.erase()
}

func (tb *TextBox) erase() buffer.Change {
	ch := tb.buf.EraseSelection()
	tb.publishChange(ch, false)
	return ch
}

// SelectAll selects the whole content.
func (tb *TextBox) SelectAll() {
	tb.buf.SelectAll()
}

// Copy writes the selection to the clipboard. Without a selection it does
// nothing.
func (tb *TextBox) Copy() error {
	if !tb.buf.HasSelection() {
		return nil
	}
	return tb.clip.WriteText(tb.buf.SelectedText())
}

// Cut copies the selection to the clipboard and erases it.
// The content is left alone if the clipboard write fails.
func (tb *TextBox) Cut() error {
	if !tb.buf.HasSelection() {
		return nil
	}
	if err := tb.Copy(); err != nil {
		return err
	}
	tb.erase()
	return nil
}

// Paste inserts the clipboard text, with line breaks turned into spaces.
func (tb *TextBox) Paste() error {
	text, err := tb.clip.ReadText()
	if err != nil {
		return err
	}
	tb.InsertPasted(text)
	return nil
}

// InsertPasted inserts pasted text with its line breaks turned into spaces.
func (tb *TextBox) InsertPasted(text string) buffer.Change {
	return tb.Insert(lineBreaks.Replace(text))
}

// Submit publishes the current content.
func (tb *TextBox) Submit() {
	tb.publish(event.TopicSubmitted, event.Submitted{Text: tb.buf.Text()})
}

// SetText replaces the content programmatically. The filter is not applied.
func (tb *TextBox) SetText(text string) {
	before := tb.buf.Text()
	tb.buf.SetText(text)
	tb.publishReset(before)
}

// SetMaxLength changes the character limit, truncating the content if needed.
func (tb *TextBox) SetMaxLength(n int) {
	before := tb.buf.Text()
	tb.buf.SetMaxLength(n)
	tb.publishReset(before)
}

// publishReset reports a whole-content change.
func (tb *TextBox) publishReset(before string) {
	after := tb.buf.Text()
	if after == before {
		return
	}
	tb.publish(event.TopicTextChanged, event.TextChanged{
		Removed:  before,
		Inserted: after,
		Text:     after,
	})
}

func (tb *TextBox) publishChange(ch buffer.Change, inserted bool) {
	if !ch.Changed() {
		return
	}
	payload := event.TextChanged{
		Start:     ch.Start,
		Removed:   ch.Removed,
		Inserted:  ch.Inserted,
		Truncated: ch.Truncated,
		Text:      tb.buf.Text(),
	}
	if inserted && ch.Inserted != "" {
		tb.publish(event.TopicTextInserted, payload)
	}
	tb.publish(event.TopicTextChanged, payload)
}

func (tb *TextBox) publish(topic event.Topic, payload any) {
	if tb.bus == nil {
		return
	}
	if _, err := tb.bus.Publish(event.New(topic, tb.id, payload)); err != nil {
		tb.logger.Error("publish %s: %v", topic, err)
	}
}
