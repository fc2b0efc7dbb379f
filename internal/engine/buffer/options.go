package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithMaxLength caps the buffer at n characters.
// A negative value means unbounded.
func WithMaxLength(n int) Option {
	return func(b *Buffer) {
		if n < 0 {
			n = NoLimit
		}
		b.maxLength = n
	}
}

// WithLogger sets the diagnostics sink for recovered edit failures.
func WithLogger(l Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithGraphemeNavigation makes left/right movement step over whole
// grapheme clusters instead of single runes.
func WithGraphemeNavigation() Option {
	return func(b *Buffer) {
		b.graphemes = true
	}
}
