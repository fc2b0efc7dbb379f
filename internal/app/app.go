// Package app wires a text box to its configuration, event bus, clipboard,
// input filter and front end, and manages its lifecycle.
//
// The application runs in one of two modes: interactive, on a terminal
// screen, or scripted, reading key specifications line by line.
package app

import (
	"errors"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/textbox/internal/clipboard"
	"github.com/dshills/textbox/internal/config"
	"github.com/dshills/textbox/internal/config/watcher"
	"github.com/dshills/textbox/internal/event"
	"github.com/dshills/textbox/internal/logging"
	"github.com/dshills/textbox/internal/textbox"
)

// DefaultLabel is the field label used when none is given.
const DefaultLabel = "field"

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML, YAML or JSON file holding the field.
	ConfigPath string

	// Label is the dotted path of the field inside the config file.
	Label string

	// MaxLength overrides the configured limit when non-nil.
	MaxLength *int

	// Text overrides the configured initial text when non-nil.
	Text *string

	// Prompt is drawn before the field in interactive mode.
	Prompt string

	// Watch reloads the field settings when the config file changes.
	Watch bool

	// SaveOnSubmit writes the field back to the config file on submit.
	SaveOnSubmit bool

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput receives log lines. Nil discards them.
	LogOutput io.Writer

	// Clipboard overrides the system clipboard.
	Clipboard clipboard.Clipboard

	// Getenv looks up TEXTBOX_* overrides. Nil uses the process environment.
	Getenv config.LookupFunc
}

// Application coordinates one text box.
type Application struct {
	opts   Options
	logger *logging.Logger
	bus    *event.Bus
	tb     *textbox.TextBox
	watch  *watcher.Watcher

	// stored is the field as written in the config file, before overrides
	// and filter path resolution. Owned by the text box goroutine.
	stored config.Field

	// post runs a function on the goroutine that owns the text box.
	postMu sync.Mutex
	post   func(func()) error
	tbMu   sync.Mutex

	submitMu  sync.Mutex
	submitted *string
	onSubmit  func()

	running atomic.Bool
	closed  atomic.Bool
}

// New creates an application and loads its field.
func New(opts Options) (*Application, error) {
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}

	app := &Application{opts: opts}
	app.post = app.postLocked

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logging
	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	app.logger = logging.New(logging.Config{
		Level:  logging.ParseLogLevel(app.opts.LogLevel),
		Output: out,
		Prefix: "textbox",
	})

	// 2. Event bus
	app.bus = event.NewBus(event.WithLogger(app.logger.WithComponent("event")))

	// 3. Field definition
	field, err := app.loadField()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 4. Text box
	clip := app.opts.Clipboard
	if clip == nil {
		clip = clipboard.Default()
	}
	app.tb = textbox.New(
		textbox.WithLabel(app.opts.Label),
		textbox.WithBus(app.bus),
		textbox.WithClipboard(clip),
		textbox.WithLogger(app.logger),
	)
	if err := app.tb.Load(field); err != nil {
		return &InitError{Component: "textbox", Err: err}
	}

	// 5. Subscriptions
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	// 6. Live reload
	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath, app.opts.Label, app.reload,
			watcher.WithErrorHandler(func(err error) {
				app.logger.Warn("config reload failed: %v", err)
			}))
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		app.watch = w
	}

	return nil
}

// loadField reads the field from the config file, then applies environment
// and flag overrides. A missing file or label yields an empty field.
func (app *Application) loadField() (config.Field, error) {
	field := config.NewField(app.opts.Label)

	if app.opts.ConfigPath != "" {
		f, err := config.Load(app.opts.ConfigPath, app.opts.Label)
		switch {
		case err == nil:
			field = f
		case errors.Is(err, config.ErrFieldNotFound):
			app.logger.Info("no field %s in %s, starting empty", app.opts.Label, app.opts.ConfigPath)
		default:
			return field, err
		}
	}
	app.stored = field

	var err error
	if app.opts.Getenv != nil {
		field, err = config.ApplyEnvFrom(field, app.opts.Getenv)
	} else {
		field, err = config.ApplyEnv(field)
	}
	if err != nil {
		return field, err
	}

	if app.opts.MaxLength != nil {
		field.MaxLength = *app.opts.MaxLength
	}
	if app.opts.Text != nil {
		field.Text = *app.opts.Text
	}
	return app.resolveFilter(field), nil
}

// resolveFilter makes a relative filter path relative to the config file.
func (app *Application) resolveFilter(f config.Field) config.Field {
	if f.Filter != "" && !filepath.IsAbs(f.Filter) && app.opts.ConfigPath != "" {
		f.Filter = filepath.Join(filepath.Dir(app.opts.ConfigPath), f.Filter)
	}
	return f
}

func (app *Application) subscribe() error {
	if _, err := app.bus.Subscribe(event.TopicSubmitted, app.handleSubmitted); err != nil {
		return err
	}
	_, err := app.bus.Subscribe(event.TopicTextInserted, func(ev event.Event) {
		if p, ok := ev.Payload.(event.TextChanged); ok {
			app.logger.Debug("inserted %q at %d", p.Inserted, p.Start)
		}
	})
	return err
}

func (app *Application) handleSubmitted(ev event.Event) {
	p, ok := ev.Payload.(event.Submitted)
	if !ok {
		return
	}

	app.submitMu.Lock()
	text := p.Text
	app.submitted = &text
	onSubmit := app.onSubmit
	app.submitMu.Unlock()

	if app.opts.SaveOnSubmit && app.opts.ConfigPath != "" {
		// Only the text is saved; flag and environment overrides stay
		// out of the file.
		saved := app.stored
		saved.Text = app.tb.Field().Text
		if err := config.Save(app.opts.ConfigPath, app.opts.Label, saved); err != nil {
			app.logger.Error("saving field: %v", err)
		} else {
			app.logger.Info("saved field %s to %s", app.opts.Label, app.opts.ConfigPath)
		}
	}

	if onSubmit != nil {
		onSubmit()
	}
}

// reload runs on the watcher goroutine and hands the field to the owner of
// the text box.
func (app *Application) reload(stored config.Field) {
	f := app.resolveFilter(stored)
	if app.opts.MaxLength != nil {
		f.MaxLength = *app.opts.MaxLength
	}

	app.postMu.Lock()
	post := app.post
	app.postMu.Unlock()

	err := post(func() {
		app.stored = stored
		if err := app.tb.Reconfigure(f); err != nil {
			app.logger.Warn("applying reloaded field: %v", err)
		}
	})
	if err != nil {
		app.logger.Warn("dropping reload: %v", err)
	}
}

// setPoster routes functions that touch the text box to its owner.
func (app *Application) setPoster(post func(func()) error) {
	app.postMu.Lock()
	defer app.postMu.Unlock()
	if post == nil {
		post = app.postLocked
	}
	app.post = post
}

// postLocked runs fn under tbMu, for when no event loop owns the text box.
func (app *Application) postLocked(fn func()) error {
	app.tbMu.Lock()
	defer app.tbMu.Unlock()
	fn()
	return nil
}

// TextBox returns the text box.
func (app *Application) TextBox() *textbox.TextBox {
	return app.tb
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Submitted returns the last submitted text.
func (app *Application) Submitted() (string, bool) {
	app.submitMu.Lock()
	defer app.submitMu.Unlock()
	if app.submitted == nil {
		return "", false
	}
	return *app.submitted, true
}

// Shutdown stops the watcher and releases the text box.
func (app *Application) Shutdown() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	if app.watch != nil {
		if err := app.watch.Close(); err != nil && app.logger != nil {
			app.logger.Warn("closing watcher: %v", err)
		}
	}
	if app.tb != nil {
		app.tb.Close()
	}
}
