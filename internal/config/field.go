package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/textbox/internal/engine/buffer"
)

// Keys of a field's entries inside its table.
const (
	keyText      = "text"
	keyMaxLength = "max_length"
	keyFilter    = "filter"
	keyGraphemes = "graphemes"
)

// Field is the persisted state of one text box.
type Field struct {
	// Label is the dotted path of the field inside the document.
	Label string

	// Text is the field content.
	Text string

	// MaxLength is the character limit; buffer.NoLimit when absent.
	MaxLength int

	// Filter is the path of a Lua input filter script, if any.
	Filter string

	// GraphemeNavigation makes the cursor step over grapheme clusters.
	GraphemeNavigation bool
}

// NewField returns an empty, unbounded field.
func NewField(label string) Field {
	return Field{Label: label, MaxLength: buffer.NoLimit}
}

// toMap returns the field's entries as a document table.
// MaxLength is omitted when unbounded and Filter when empty.
func (f Field) toMap() map[string]any {
	m := map[string]any{
		keyText:      f.Text,
		keyGraphemes: f.GraphemeNavigation,
	}
	if f.MaxLength >= 0 {
		m[keyMaxLength] = int64(f.MaxLength)
	}
	if f.Filter != "" {
		m[keyFilter] = f.Filter
	}
	return m
}

// fieldFromMap reads a field out of a decoded table.
func fieldFromMap(label string, m map[string]any) (Field, error) {
	f := NewField(label)

	for key, val := range m {
		switch key {
		case keyText:
			s, ok := val.(string)
			if !ok {
				return f, mismatch(label, key, "string", val)
			}
			f.Text = s
		case keyFilter:
			s, ok := val.(string)
			if !ok {
				return f, mismatch(label, key, "string", val)
			}
			f.Filter = s
		case keyGraphemes:
			b, ok := val.(bool)
			if !ok {
				return f, mismatch(label, key, "bool", val)
			}
			f.GraphemeNavigation = b
		case keyMaxLength:
			n, ok := toInt(val)
			if !ok {
				return f, mismatch(label, key, "integer", val)
			}
			f.MaxLength = max(n, buffer.NoLimit)
		}
	}

	return f, nil
}

func mismatch(label, key, want string, got any) error {
	return fmt.Errorf("%w: %s.%s: expected %s, got %T", ErrTypeMismatch, label, key, want, got)
}

// toInt accepts the integer types the codecs produce, as long as the value
// fits in an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n >= float64(math.MaxInt) || n < float64(math.MinInt) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// validateLabel checks a dotted label path. Segments may contain letters,
// digits, '_' and '-' but must not start with a digit.
func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLabel)
	}
	for _, seg := range strings.Split(label, ".") {
		if seg == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidLabel, label)
		}
		if seg[0] >= '0' && seg[0] <= '9' {
			return fmt.Errorf("%w: segment %q starts with a digit", ErrInvalidLabel, seg)
		}
		for _, r := range seg {
			ok := r == '_' || r == '-' ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			if !ok {
				return fmt.Errorf("%w: %q contains %q", ErrInvalidLabel, label, r)
			}
		}
	}
	return nil
}

// getByPath walks a dotted path through nested tables. A missing segment
// is ErrFieldNotFound; a segment holding anything but a table is
// ErrTypeMismatch.
func getByPath(data map[string]any, path string) (map[string]any, error) {
	current := data
	parts := strings.Split(path, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: expected table, got %T",
				ErrTypeMismatch, strings.Join(parts[:i+1], "."), val)
		}
		current = next
	}
	return current, nil
}

// setByPath sets a value in a nested map using a dot-separated path,
// creating intermediate tables as needed.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
