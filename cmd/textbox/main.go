// Package main is the entry point for the textbox field editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/textbox/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	logFile string
	script  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	var logOut io.Writer
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}

	interactive := !opts.script && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive && logOut == nil {
		// The screen owns the terminal in interactive mode; otherwise
		// stderr is free for logs.
		logOut = os.Stderr
	}
	opts.LogOutput = logOut

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if interactive {
		err = application.RunInteractive(ctx)
		if err == nil {
			if text, ok := application.Submitted(); ok {
				fmt.Println(text)
			}
		}
	} else {
		err = application.RunScript(ctx, os.Stdin, os.Stdout)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var maxLength int
	var text string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to the field file (.toml, .yaml, .yml or .json)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to the field file (shorthand)")
	flag.StringVar(&opts.Label, "label", app.DefaultLabel, "Dotted path of the field inside the file")
	flag.StringVar(&opts.Label, "l", app.DefaultLabel, "Dotted path of the field (shorthand)")
	flag.IntVar(&maxLength, "max", -1, "Maximum length in characters (-1 for unbounded)")
	flag.StringVar(&text, "text", "", "Initial text")
	flag.StringVar(&opts.Prompt, "prompt", "> ", "Prompt shown before the field")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload field settings when the file changes")
	flag.BoolVar(&opts.Watch, "w", false, "Reload field settings when the file changes (shorthand)")
	flag.BoolVar(&opts.SaveOnSubmit, "save", false, "Write the submitted text back to the file (flag and environment overrides are not saved)")
	flag.BoolVar(&opts.script, "script", false, "Read key specifications from stdin even on a terminal")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textbox - a bounded single-line text field\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textbox [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScript mode (stdin is not a terminal) reads one command per line:\n")
		fmt.Fprintf(os.Stderr, "  a, <S-Left>, Ctrl+A   key specifications\n")
		fmt.Fprintf(os.Stderr, "  :some text           insert literal text\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textbox -max 8                       Edit an 8 character field\n")
		fmt.Fprintf(os.Stderr, "  textbox -c form.toml -l login.user   Edit a stored field\n")
		fmt.Fprintf(os.Stderr, "  printf ':hi\\n<BS>\\n' | textbox     Run a key script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("textbox %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch strings.ToLower(opts.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// Only explicit flags override the stored field.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max":
			opts.MaxLength = &maxLength
		case "text":
			opts.Text = &text
		}
	})

	return opts
}
