package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/textbox/internal/input/key"
	"github.com/dshills/textbox/internal/terminal"
)

// RunInteractive shows the text box on the terminal until the user submits
// with Enter or quits with Escape or Ctrl+Q.
func (app *Application) RunInteractive(ctx context.Context) error {
	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	return app.RunOnScreen(ctx, screen)
}

// RunOnScreen runs the interactive loop on an existing screen.
func (app *Application) RunOnScreen(ctx context.Context, screen *terminal.Screen) error {
	if err := app.begin(); err != nil {
		return err
	}
	defer app.running.Store(false)

	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	loop := terminal.NewApp(screen, app.tb,
		terminal.WithPrompt(app.opts.Prompt),
		terminal.WithAppLogger(app.logger))

	app.setPoster(loop.Post)
	defer app.setPoster(nil)

	app.submitMu.Lock()
	app.onSubmit = loop.Stop
	app.submitMu.Unlock()
	defer func() {
		app.submitMu.Lock()
		app.onSubmit = nil
		app.submitMu.Unlock()
	}()

	return loop.Run(ctx)
}

// RunScript feeds the text box from r, one command per line, and writes the
// final content to w.
//
// A line is either a key specification such as "a", "<S-Left>" or
// "Ctrl+A", or ":" followed by literal text to insert. Empty lines and lines
// starting with "#" are skipped.
func (app *Application) RunScript(ctx context.Context, r io.Reader, w io.Writer) error {
	if err := app.begin(); err != nil {
		return err
	}
	defer app.running.Store(false)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		line := scanner.Text()
		if err := app.runLine(line); err != nil {
			return &ScriptError{Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	var text string
	_ = app.postLocked(func() { text = app.tb.Text() })
	_, err := fmt.Fprintln(w, text)
	return err
}

func (app *Application) runLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	if literal, ok := strings.CutPrefix(line, ":"); ok {
		return app.postLocked(func() { app.tb.Insert(literal) })
	}

	ev, err := key.Parse(trimmed)
	if err != nil {
		return err
	}
	return app.postLocked(func() {
		if !app.tb.HandleKey(ev) {
			app.logger.Debug("unbound key %s", ev)
		}
	})
}

func (app *Application) begin() error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return nil
}
