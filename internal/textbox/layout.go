package textbox

import (
	"github.com/mattn/go-runewidth"
)

// Geometry is the visible part of a text box for a given width in cells.
type Geometry struct {
	// Offset is the index of the first visible character.
	Offset int

	// Visible is the text that fits in the view.
	Visible string

	// Cursor is the cell column of the cursor within the view.
	Cursor int

	// SelStart and SelEnd delimit the selection in cell columns within the
	// view. They are equal when nothing visible is selected.
	SelStart, SelEnd int
}

// HasSelection returns true if part of the selection is visible.
func (g Geometry) HasSelection() bool {
	return g.SelEnd > g.SelStart
}

// Layout scrolls the view horizontally so the cursor stays visible and
// returns the resulting geometry. It clears the buffer's layout-stale flag.
func (tb *TextBox) Layout(width int) Geometry {
	defer tb.buf.MarkLaidOut()

	if width <= 0 {
		return Geometry{Offset: tb.scroll}
	}

	text := []rune(tb.buf.Text())
	cur := min(max(tb.buf.Cursor(), 0), len(text))

	// Keep one cell free after the cursor so it can sit past the last
	// character.
	tb.scroll = min(tb.scroll, cur)
	for tb.scroll < cur && cellWidth(text[tb.scroll:cur]) >= width {
		tb.scroll++
	}
	// Scroll back when deletions left room on the left.
	for tb.scroll > 0 && cellWidth(text[tb.scroll-1:cur]) < width {
		tb.scroll--
	}

	end := tb.scroll
	used := 0
	for end < len(text) {
		w := runewidth.RuneWidth(text[end])
		if used+w > width {
			break
		}
		used += w
		end++
	}

	g := Geometry{
		Offset:  tb.scroll,
		Visible: string(text[tb.scroll:end]),
		Cursor:  cellWidth(text[tb.scroll:cur]),
	}

	sel := tb.buf.Selection().Clamp(len(text))
	if start, stop := max(sel.Start(), tb.scroll), min(sel.End(), end); stop > start {
		g.SelStart = cellWidth(text[tb.scroll:start])
		g.SelEnd = cellWidth(text[tb.scroll:stop])
	}
	return g
}

func cellWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// OffsetAt returns the character offset at a cell column of the current
// view, for placing the cursor with the mouse. Columns past the text map to
// the end.
func (tb *TextBox) OffsetAt(col int) int {
	text := []rune(tb.buf.Text())
	pos := min(tb.scroll, len(text))
	used := 0
	for pos < len(text) {
		w := runewidth.RuneWidth(text[pos])
		if used+w > col {
			break
		}
		used += w
		pos++
	}
	return pos
}
