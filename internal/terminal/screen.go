package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/textbox/internal/textbox"
)

// Styles holds the colors used to draw a text box.
type Styles struct {
	Prompt    tcell.Style
	Text      tcell.Style
	Selection tcell.Style
	Status    tcell.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt:    tcell.StyleDefault.Bold(true),
		Text:      tcell.StyleDefault.Underline(true),
		Selection: tcell.StyleDefault.Reverse(true),
		Status:    tcell.StyleDefault.Dim(true),
	}
}

// Screen draws text boxes on a tcell screen.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	styles Styles
}

// NewScreen creates a screen on the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen.
func NewWithScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s, styles: DefaultStyles()}
}

// SetStyles replaces the drawing styles.
func (s *Screen) SetStyles(st Styles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styles = st
}

// Init initializes the terminal and enables bracketed paste and mouse input.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnablePaste()
	s.screen.EnableMouse()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

// Size returns the screen size in cells.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// Beep rings the terminal bell.
func (s *Screen) Beep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.screen.Beep() // best-effort
}

// PollEvent waits for the next event. It returns nil after Fini.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event for PollEvent.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Sync redraws the whole terminal, e.g. after a resize.
func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
}

// TextColumn returns the first cell column of the text for a prompt.
func TextColumn(prompt string) int {
	return runewidth.StringWidth(prompt)
}

// Draw renders the prompt and text box on the first row and a status line
// on the second, then shows the result.
func (s *Screen) Draw(tb *textbox.TextBox, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	width, height := s.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	x0 := s.drawString(0, 0, prompt, s.styles.Prompt)
	g := tb.Layout(width - x0)

	// Underline the whole field so its extent is visible.
	for x := x0; x < width; x++ {
		s.screen.SetContent(x, 0, ' ', nil, s.styles.Text)
	}

	col := 0
	for _, c := range cells(g.Visible) {
		style := s.styles.Text
		if col >= g.SelStart && col < g.SelEnd {
			style = s.styles.Selection
		}
		s.screen.SetContent(x0+col, 0, c.main, c.comb, style)
		col += c.width
	}

	if x0+g.Cursor < width {
		s.screen.ShowCursor(x0+g.Cursor, 0)
	} else {
		s.screen.HideCursor()
	}

	if height > 1 {
		s.drawString(0, 1, status(tb), s.styles.Status)
	}
	s.screen.Show()
}

// drawString draws text and returns the column after it.
func (s *Screen) drawString(x, y int, text string, style tcell.Style) int {
	for _, c := range cells(text) {
		s.screen.SetContent(x, y, c.main, c.comb, style)
		x += c.width
	}
	return x
}

func status(tb *textbox.TextBox) string {
	buf := tb.Buffer()
	if buf.MaxLength() < 0 {
		return fmt.Sprintf("%d chars", buf.Len())
	}
	return fmt.Sprintf("%d/%d chars", buf.Len(), buf.MaxLength())
}

// cell is one screen cell: a base rune with its zero-width combining runes.
type cell struct {
	main  rune
	comb  []rune
	width int
}

func cells(text string) []cell {
	var out []cell
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 && len(out) > 0 {
			last := &out[len(out)-1]
			last.comb = append(last.comb, r)
			continue
		}
		out = append(out, cell{main: r, width: max(w, 1)})
	}
	return out
}
