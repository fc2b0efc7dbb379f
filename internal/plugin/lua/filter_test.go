package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const digitsOnly = `
function filter(text, current, max_length)
    return (text:gsub("%D", ""))
end
`

func TestFilterTransforms(t *testing.T) {
	f, err := NewFilter(digitsOnly)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.Apply("a1b2c3", "", -1)
	require.NoError(t, err)
	assert.Equal(t, "123", got)
}

func TestFilterSeesContext(t *testing.T) {
	f, err := NewFilter(`
function filter(text, current, max_length)
    if #current + #text > max_length then
        return nil
    end
    return string.upper(text)
end
`)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.Apply("ab", "xy", 4)
	require.NoError(t, err)
	assert.Equal(t, "AB", got)

	got, err = f.Apply("abc", "xy", 4)
	require.NoError(t, err)
	assert.Empty(t, got, "nil return should reject")
}

func TestFilterBooleanResult(t *testing.T) {
	f, err := NewFilter(`function filter(text) return text ~= "no" end`)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.Apply("yes", "", -1)
	require.NoError(t, err)
	assert.Equal(t, "yes", got)

	got, err = f.Apply("no", "", -1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterBadReturn(t *testing.T) {
	f, err := NewFilter(`function filter(text) return {} end`)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Apply("x", "", -1)
	assert.ErrorIs(t, err, ErrBadFilterType)
}

func TestFilterRuntimeError(t *testing.T) {
	f, err := NewFilter(`function filter(text) error("nope") end`)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Apply("x", "", -1)
	assert.Error(t, err)
}

func TestFilterMissingFunction(t *testing.T) {
	_, err := NewFilter(`x = 1`)
	assert.ErrorIs(t, err, ErrNoFilterFunc)
}

func TestFilterSyntaxError(t *testing.T) {
	_, err := NewFilter(`function filter(`)
	assert.Error(t, err)
}

func TestFilterSandbox(t *testing.T) {
	_, err := NewFilter(`os.exit(1)`)
	assert.Error(t, err, "os library should not be available")

	f, err := NewFilter(`function filter(text) if loadstring ~= nil then return "leak" end return text end`)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.Apply("ok", "", -1)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestFilterTimeout(t *testing.T) {
	f, err := NewFilter(`function filter(text) while true do end end`, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Apply("x", "", -1)
	assert.Error(t, err)
}

func TestFilterClosed(t *testing.T) {
	f, err := NewFilter(digitsOnly)
	require.NoError(t, err)
	f.Close()
	f.Close()

	_, err = f.Apply("1", "", -1)
	assert.True(t, errors.Is(err, ErrFilterClosed))
}

func TestNewFilterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.lua")
	require.NoError(t, os.WriteFile(path, []byte(digitsOnly), 0o644))

	f, err := NewFilterFromFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.Apply("4x2", "", -1)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	_, err = NewFilterFromFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
