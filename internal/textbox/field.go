package textbox

import (
	"fmt"

	"github.com/dshills/textbox/internal/config"
	"github.com/dshills/textbox/internal/event"
	"github.com/dshills/textbox/internal/plugin/lua"
)

// Field returns the persistable state of the text box.
func (tb *TextBox) Field() config.Field {
	return config.Field{
		Label:              tb.label,
		Text:               tb.buf.Text(),
		MaxLength:          tb.buf.MaxLength(),
		Filter:             tb.filterPath,
		GraphemeNavigation: tb.buf.GraphemeNavigation(),
	}
}

// Load applies a persisted field: settings first, then the text.
func (tb *TextBox) Load(f config.Field) error {
	if err := tb.configure(f); err != nil {
		return err
	}
	tb.SetText(f.Text)
	return nil
}

// Reconfigure applies the settings of a reloaded field but keeps the text
// the user is editing, truncated to the new limit if needed.
func (tb *TextBox) Reconfigure(f config.Field) error {
	if err := tb.configure(f); err != nil {
		return err
	}
	tb.logger.Info("field reloaded: max length %d", tb.buf.MaxLength())
	tb.publish(event.TopicFieldReloaded, event.FieldReloaded{
		Label:     f.Label,
		MaxLength: tb.buf.MaxLength(),
	})
	return nil
}

func (tb *TextBox) configure(f config.Field) error {
	if f.Filter != tb.filterPath {
		if err := tb.loadFilter(f.Filter); err != nil {
			return err
		}
	}
	if f.Label != "" {
		tb.label = f.Label
	}
	tb.buf.SetGraphemeNavigation(f.GraphemeNavigation)
	tb.SetMaxLength(f.MaxLength)
	return nil
}

// loadFilter replaces the filter with the script at path, or removes it
// when path is empty.
func (tb *TextBox) loadFilter(path string) error {
	var next *lua.Filter
	if path != "" {
		var err error
		next, err = lua.NewFilterFromFile(path)
		if err != nil {
			return fmt.Errorf("loading input filter: %w", err)
		}
	}

	tb.Close()
	tb.filterPath = path
	if next == nil {
		tb.filter = nil
		return nil
	}
	tb.filter = next
	tb.ownFilter = next
	return nil
}
