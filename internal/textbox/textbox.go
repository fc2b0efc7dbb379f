package textbox

import (
	"github.com/google/uuid"

	"github.com/dshills/textbox/internal/clipboard"
	"github.com/dshills/textbox/internal/engine/buffer"
	"github.com/dshills/textbox/internal/event"
	"github.com/dshills/textbox/internal/logging"
)

// Filter transforms text before it is inserted.
// An empty result with a nil error rejects the insertion.
type Filter interface {
	Apply(text, current string, maxLength int) (string, error)
}

// TextBox is a single-line text input.
type TextBox struct {
	id     string
	label  string
	buf    *buffer.Buffer
	clip   clipboard.Clipboard
	bus    *event.Bus
	filter Filter
	logger *logging.Logger

	// Set when the filter was loaded from a field and must be closed here.
	filterPath string
	ownFilter  closer

	scroll int
}

type closer interface{ Close() }

// Option configures a TextBox.
type Option func(*options)

type options struct {
	label     string
	text      string
	maxLength int
	graphemes bool
	clip      clipboard.Clipboard
	bus       *event.Bus
	filter    Filter
	logger    *logging.Logger
}

// WithLabel names the text box; the label doubles as the config path.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithText sets the initial content.
func WithText(text string) Option {
	return func(o *options) { o.text = text }
}

// WithMaxLength sets the character limit. Negative means unbounded.
func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// WithGraphemeNavigation makes the cursor step over grapheme clusters.
func WithGraphemeNavigation() Option {
	return func(o *options) { o.graphemes = true }
}

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(o *options) {
		if c != nil {
			o.clip = c
		}
	}
}

// WithBus sets the bus events are published on.
func WithBus(b *event.Bus) Option {
	return func(o *options) { o.bus = b }
}

// WithFilter sets the input filter.
func WithFilter(f Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a text box.
func New(opts ...Option) *TextBox {
	o := options{
		maxLength: buffer.NoLimit,
		logger:    logging.Null(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clip == nil {
		o.clip = clipboard.Default()
	}

	id := uuid.NewString()
	logger := o.logger.WithComponent("textbox").WithField("id", id[:8])
	if o.label != "" {
		logger = logger.WithField("label", o.label)
	}

	bufOpts := []buffer.Option{
		buffer.WithMaxLength(o.maxLength),
		buffer.WithLogger(logger),
	}
	if o.graphemes {
		bufOpts = append(bufOpts, buffer.WithGraphemeNavigation())
	}

	return &TextBox{
		id:     id,
		label:  o.label,
		buf:    buffer.NewFromString(o.text, bufOpts...),
		clip:   o.clip,
		bus:    o.bus,
		filter: o.filter,
		logger: logger,
	}
}

// ID returns the unique identifier used as event source.
func (tb *TextBox) ID() string {
	return tb.id
}

// Label returns the text box label.
func (tb *TextBox) Label() string {
	return tb.label
}

// Buffer returns the underlying buffer for read access by the presentation
// layer. Edits should go through the TextBox so events are published.
func (tb *TextBox) Buffer() *buffer.Buffer {
	return tb.buf
}

// Text returns the current content.
func (tb *TextBox) Text() string {
	return tb.buf.Text()
}

// Close releases a filter loaded from a field.
func (tb *TextBox) Close() {
	if tb.ownFilter != nil {
		tb.ownFilter.Close()
		tb.ownFilter = nil
	}
}
