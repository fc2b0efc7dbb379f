// Package textbox implements a single-line text input widget.
//
// A TextBox owns a buffer.Buffer and translates user intent (key presses,
// clipboard commands, submission) into buffer operations. It publishes
// events on an optional event.Bus:
//
//   - event.TopicTextInserted when typed or pasted text was admitted
//   - event.TopicTextChanged after every edit that changed the content
//   - event.TopicSubmitted when the user presses Enter
//   - event.TopicFieldReloaded after Reconfigure applied a reloaded field
//
// Inserted text can be passed through a Filter first, typically a Lua
// script from the plugin/lua package.
//
// Layout computes the horizontally scrolled view of the text for a given
// cell width, measuring characters with go-runewidth.
//
// A TextBox is driven by a single UI goroutine and is not safe for
// concurrent use.
package textbox
