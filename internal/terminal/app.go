package terminal

import (
	"context"
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textbox/internal/input/key"
	"github.com/dshills/textbox/internal/logging"
	"github.com/dshills/textbox/internal/textbox"
)

// ErrNotRunning is returned by Post when the loop has stopped.
var ErrNotRunning = errors.New("event loop is not running")

// App runs the event loop for one text box.
type App struct {
	screen *Screen
	tb     *textbox.TextBox
	prompt string
	logger *logging.Logger

	quit    bool
	pasting bool
	paste   strings.Builder

	dragging   bool
	dragAnchor int
}

// AppOption configures an App.
type AppOption func(*App)

// WithPrompt sets the text drawn before the field.
func WithPrompt(prompt string) AppOption {
	return func(a *App) { a.prompt = prompt }
}

// WithAppLogger sets the logger.
func WithAppLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewApp creates an event loop for tb on an initialized screen.
func NewApp(screen *Screen, tb *textbox.TextBox, opts ...AppOption) *App {
	a := &App{
		screen: screen,
		tb:     tb,
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("terminal")
	return a
}

// Stop ends the loop after the current event. Call it from the loop
// goroutine, e.g. from an event bus handler or a posted function.
func (a *App) Stop() {
	a.quit = true
}

// Post runs fn on the loop goroutine.
func (a *App) Post(fn func()) error {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		return errors.Join(ErrNotRunning, err)
	}
	return nil
}

// Run processes events until Stop, Escape, Ctrl+Q or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.Post(a.Stop)
		case <-done:
		}
	}()

	a.quit = false
	a.screen.Draw(a.tb, a.prompt)
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.handle(ev)
		if a.quit {
			break
		}
		a.screen.Draw(a.tb, a.prompt)
	}
	return ctx.Err()
}

func (a *App) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(e)
	case *tcell.EventPaste:
		a.handlePaste(e)
	case *tcell.EventMouse:
		a.handleMouse(e)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		if fn, ok := e.Data().(func()); ok {
			fn()
		}
	}
}

func (a *App) handleKey(e *tcell.EventKey) {
	kev, ok := ConvertKey(e)
	if !ok {
		return
	}

	if a.pasting {
		switch {
		case kev.IsChar():
			a.paste.WriteRune(kev.Rune)
		case kev.Key == key.KeyEnter:
			a.paste.WriteByte('\n')
		}
		return
	}

	if kev.Key == key.KeyEscape || kev.IsCtrlRune('q') {
		a.quit = true
		return
	}

	before := a.tb.Buffer().RevisionID()
	if !a.tb.HandleKey(kev) {
		a.logger.Debug("unbound key %s", kev)
		return
	}
	if kev.IsChar() && a.tb.Buffer().RevisionID() == before {
		a.screen.Beep()
	}
}

// handlePaste collects bracketed paste content and inserts it once at the
// end, so the filter and length limit see the whole paste.
func (a *App) handlePaste(e *tcell.EventPaste) {
	if e.Start() {
		a.pasting = true
		a.paste.Reset()
		return
	}
	a.pasting = false
	text := a.paste.String()
	a.paste.Reset()
	a.tb.InsertPasted(text)
}

func (a *App) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	if e.Buttons()&tcell.Button1 == 0 {
		a.dragging = false
		return
	}
	if y != 0 {
		return
	}

	off := a.tb.OffsetAt(x - TextColumn(a.prompt))
	if !a.dragging {
		a.dragging = true
		a.dragAnchor = off
		if e.Modifiers()&tcell.ModShift != 0 {
			a.dragAnchor = a.tb.Buffer().Anchor()
		}
	}
	a.tb.Buffer().SetSelection(a.dragAnchor, off)
}
