package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/textbox/internal/engine/buffer"
)

// EnvPrefix prefixes the environment variables ApplyEnv reads.
const EnvPrefix = "TEXTBOX_"

// Environment variables mapped onto Field entries.
const (
	EnvText      = EnvPrefix + "TEXT"
	EnvMaxLength = EnvPrefix + "MAX_LENGTH"
	EnvFilter    = EnvPrefix + "FILTER"
	EnvGraphemes = EnvPrefix + "GRAPHEMES"
)

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides f with values from the process environment.
func ApplyEnv(f Field) (Field, error) {
	return ApplyEnvFrom(f, os.LookupEnv)
}

// ApplyEnvFrom overrides f with values found by lookup.
// Empty values are treated as set.
func ApplyEnvFrom(f Field, lookup LookupFunc) (Field, error) {
	if v, ok := lookup(EnvText); ok {
		f.Text = v
	}
	if v, ok := lookup(EnvFilter); ok {
		f.Filter = v
	}
	if v, ok := lookup(EnvMaxLength); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return f, fmt.Errorf("%w: %s=%q: expected integer", ErrTypeMismatch, EnvMaxLength, v)
		}
		f.MaxLength = max(n, buffer.NoLimit)
	}
	if v, ok := lookup(EnvGraphemes); ok {
		b, err := parseBool(v)
		if err != nil {
			return f, fmt.Errorf("%w: %s=%q: expected boolean", ErrTypeMismatch, EnvGraphemes, v)
		}
		f.GraphemeNavigation = b
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
