package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textbox/internal/engine/buffer"
)

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"fields.toml", "fields.yaml", "fields.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			f := Field{Label: "login.user", Text: "alice", MaxLength: 10, GraphemeNavigation: true}

			require.NoError(t, Save(path, f.Label, f))

			got, err := Load(path, f.Label)
			require.NoError(t, err)
			assert.Equal(t, f, got)

			g := Field{Label: "login.pass", Text: "secret", MaxLength: buffer.NoLimit}
			require.NoError(t, Save(path, g.Label, g))

			got, err = Load(path, f.Label)
			require.NoError(t, err)
			assert.Equal(t, f, got, "saving another field must keep the first")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"), "f")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load("fields.ini", "f")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Save("fields.ini", "f", NewField("f"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadParseErrorHasPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[f\n"), 0o644))

	_, err := Load(path, "f")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)

	err = Save(path, "f", NewField("f"))
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.yaml")
	require.NoError(t, Save(path, "f", NewField("f")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "f.yaml", entries[0].Name())
}

func TestApplyEnvFrom(t *testing.T) {
	env := map[string]string{
		EnvText:      "from env",
		EnvMaxLength: " 12 ",
		EnvFilter:    "digits.lua",
		EnvGraphemes: "yes",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	f, err := ApplyEnvFrom(NewField("f"), lookup)
	require.NoError(t, err)
	assert.Equal(t, Field{
		Label:              "f",
		Text:               "from env",
		MaxLength:          12,
		Filter:             "digits.lua",
		GraphemeNavigation: true,
	}, f)
}

func TestApplyEnvFromUnset(t *testing.T) {
	base := Field{Label: "f", Text: "keep", MaxLength: 3}
	f, err := ApplyEnvFrom(base, func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, base, f)
}

func TestApplyEnvFromInvalid(t *testing.T) {
	tests := map[string]string{
		EnvMaxLength: "lots",
		EnvGraphemes: "sometimes",
	}
	for key, val := range tests {
		lookup := func(k string) (string, bool) {
			if k == key {
				return val, true
			}
			return "", false
		}
		_, err := ApplyEnvFrom(NewField("f"), lookup)
		assert.ErrorIs(t, err, ErrTypeMismatch, key)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvMaxLength, "-7")
	f, err := ApplyEnv(Field{Label: "f", MaxLength: 5})
	require.NoError(t, err)
	assert.Equal(t, buffer.NoLimit, f.MaxLength)
}
