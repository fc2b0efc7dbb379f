package textbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutFits(t *testing.T) {
	tb := New(WithText("hello"))
	g := tb.Layout(10)

	assert.Equal(t, Geometry{Offset: 0, Visible: "hello", Cursor: 5}, g)
	assert.False(t, g.HasSelection())
	assert.False(t, tb.Buffer().NeedsLayout())
}

func TestLayoutScrollsToCursor(t *testing.T) {
	tb := New(WithText("abcdefgh"))

	g := tb.Layout(5)
	assert.Equal(t, 4, g.Offset)
	assert.Equal(t, "efgh", g.Visible)
	assert.Equal(t, 4, g.Cursor)

	tb.Buffer().MoveHome(false)
	g = tb.Layout(5)
	assert.Equal(t, 0, g.Offset)
	assert.Equal(t, "abcde", g.Visible)
	assert.Equal(t, 0, g.Cursor)

	// Moving right inside the view keeps the offset.
	tb.Buffer().MoveRight(false)
	tb.Buffer().MoveRight(false)
	g = tb.Layout(5)
	assert.Equal(t, 0, g.Offset)
	assert.Equal(t, 2, g.Cursor)
}

func TestLayoutWideCharacters(t *testing.T) {
	// Each CJK character takes two cells.
	tb := New(WithText("世界你好"))

	g := tb.Layout(5)
	assert.Equal(t, 2, g.Offset)
	assert.Equal(t, "你好", g.Visible)
	assert.Equal(t, 4, g.Cursor)

	tb.Buffer().MoveHome(false)
	g = tb.Layout(5)
	assert.Equal(t, "世界", g.Visible, "a wide character that does not fit is not shown")
}

func TestLayoutSelection(t *testing.T) {
	tb := New(WithText("hello world"))
	tb.Buffer().SetSelection(2, 4)

	g := tb.Layout(20)
	assert.True(t, g.HasSelection())
	assert.Equal(t, 2, g.SelStart)
	assert.Equal(t, 4, g.SelEnd)

	// Backward selection clipped at the right edge of the view.
	tb.Buffer().SetSelection(11, 3)
	g = tb.Layout(6)
	assert.Equal(t, 0, g.Offset)
	assert.Equal(t, "hello ", g.Visible)
	assert.Equal(t, 3, g.SelStart)
	assert.Equal(t, 6, g.SelEnd)

	// Forward selection clipped at the left edge after scrolling.
	tb.Buffer().SetSelection(3, 11)
	g = tb.Layout(6)
	assert.Equal(t, 6, g.Offset)
	assert.Equal(t, 0, g.SelStart)
	assert.Equal(t, 5, g.SelEnd)
}

func TestLayoutAfterShrink(t *testing.T) {
	tb := New(WithText("abcdefghij"))
	tb.Layout(4)

	tb.SetText("ab")
	g := tb.Layout(4)
	assert.Equal(t, 0, g.Offset)
	assert.Equal(t, "ab", g.Visible)
	assert.Equal(t, 2, g.Cursor)
}

func TestLayoutZeroWidth(t *testing.T) {
	tb := New(WithText("abc"))
	g := tb.Layout(0)
	assert.Empty(t, g.Visible)
	assert.Equal(t, 0, g.Cursor)
}

func TestOffsetAt(t *testing.T) {
	tb := New(WithText("ab世c"))
	tb.Layout(10)

	tests := []struct {
		col  int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2}, // second cell of the wide character
		{4, 3},
		{5, 4},
		{40, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tb.OffsetAt(tt.col), "col %d", tt.col)
	}

	long := New(WithText("abcdefgh"))
	long.Layout(5)
	assert.Equal(t, 5, long.OffsetAt(1))
}
