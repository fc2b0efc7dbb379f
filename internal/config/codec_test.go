package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textbox/internal/engine/buffer"
)

const tomlDoc = `
title = "login"

[fields.username]
text = "alice"
max_length = 32
filter = "lower.lua"
graphemes = true

[fields.comment]
text = "hi"
`

const yamlDoc = `
title: login
fields:
  username:
    text: alice
    max_length: 32
    filter: lower.lua
    graphemes: true
  comment:
    text: hi
`

const jsonDoc = `{
  "title": "login",
  "fields": {
    "username": {"text": "alice", "max_length": 32, "filter": "lower.lua", "graphemes": true},
    "comment": {"text": "hi"}
  }
}`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"dir/a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"a.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("a.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "unknown", Format(9).String())
}

func TestDecode(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: tomlDoc,
		FormatYAML: yamlDoc,
		FormatJSON: jsonDoc,
	}

	for format, doc := range docs {
		t.Run(format.String(), func(t *testing.T) {
			f, err := Decode(format, []byte(doc), "fields.username")
			require.NoError(t, err)
			assert.Equal(t, Field{
				Label:              "fields.username",
				Text:               "alice",
				MaxLength:          32,
				Filter:             "lower.lua",
				GraphemeNavigation: true,
			}, f)

			f, err = Decode(format, []byte(doc), "fields.comment")
			require.NoError(t, err)
			assert.Equal(t, "hi", f.Text)
			assert.Equal(t, buffer.NoLimit, f.MaxLength)
			assert.False(t, f.GraphemeNavigation)

			_, err = Decode(format, []byte(doc), "fields.password")
			assert.ErrorIs(t, err, ErrFieldNotFound)
		})
	}
}

func TestDecodeTypeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"toml text", FormatTOML, "[f]\ntext = 3\n"},
		{"toml max", FormatTOML, "[f]\nmax_length = \"ten\"\n"},
		{"yaml graphemes", FormatYAML, "f:\n  graphemes: maybe\n"},
		{"json max fraction", FormatJSON, `{"f": {"max_length": 2.5}}`},
		{"json not object", FormatJSON, `{"f": "text"}`},
		{"json max too large", FormatJSON, `{"f": {"max_length": 1e19}}`},
		{"yaml max too large", FormatYAML, "f:\n  max_length: 18446744073709551615\n"},
		{"toml max too large", FormatTOML, "[f]\nmax_length = 1e19\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.doc), "f")
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestDecodeLabelNotTable(t *testing.T) {
	tests := []struct {
		format Format
		scalar string
		nested string
	}{
		{FormatTOML, "f = \"text\"\n", "a = 3\n"},
		{FormatYAML, "f: text\n", "a: 3\n"},
		{FormatJSON, `{"f": "text"}`, `{"a": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.scalar), "f")
			assert.ErrorIs(t, err, ErrTypeMismatch)
			assert.NotErrorIs(t, err, ErrFieldNotFound)

			_, err = Decode(tt.format, []byte(tt.nested), "a.b")
			assert.ErrorIs(t, err, ErrTypeMismatch)

			_, err = Decode(tt.format, []byte(tt.nested), "c.b")
			assert.ErrorIs(t, err, ErrFieldNotFound)
		})
	}
}

func TestDecodeParseError(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
	}{
		{FormatTOML, "[f\ntext = 1"},
		{FormatYAML, "f: [unclosed"},
		{FormatJSON, `{"f": `},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.doc), "f")
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "<bytes>", perr.Path)
		})
	}
}

func TestDecodeTOMLErrorPosition(t *testing.T) {
	_, err := Decode(FormatTOML, []byte("a = 1\nb = = 2\n"), "f")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Positive(t, perr.Column)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestInvalidLabel(t *testing.T) {
	for _, label := range []string{"", "a..b", ".a", "a.", "a.b*", "fields.0", "a b"} {
		_, err := Decode(FormatJSON, []byte(jsonDoc), label)
		assert.ErrorIs(t, err, ErrInvalidLabel, label)

		_, err = Encode(FormatTOML, nil, label, NewField(label))
		assert.ErrorIs(t, err, ErrInvalidLabel, label)
	}
}

func TestEncodeRoundTripPreservesDocument(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: tomlDoc,
		FormatYAML: yamlDoc,
		FormatJSON: jsonDoc,
	}

	for format, doc := range docs {
		t.Run(format.String(), func(t *testing.T) {
			f := Field{Label: "fields.username", Text: "bob", MaxLength: 8}
			out, err := Encode(format, []byte(doc), f.Label, f)
			require.NoError(t, err)

			got, err := Decode(format, out, f.Label)
			require.NoError(t, err)
			assert.Equal(t, f, got)

			other, err := Decode(format, out, "fields.comment")
			require.NoError(t, err)
			assert.Equal(t, "hi", other.Text)
			assert.Contains(t, string(out), "login")
		})
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			f := Field{Label: "a.b", Text: "x", MaxLength: buffer.NoLimit, Filter: "f.lua"}
			out, err := Encode(format, nil, f.Label, f)
			require.NoError(t, err)
			assert.NotContains(t, string(out), "max_length")

			got, err := Decode(format, out, f.Label)
			require.NoError(t, err)
			assert.Equal(t, f, got)
		})
	}
}

func TestEncodeUnicodeText(t *testing.T) {
	f := Field{Label: "f", Text: "h\u00e9llo \"q\" \u4e16", MaxLength: 0}
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		out, err := Encode(format, nil, "f", f)
		require.NoError(t, err)
		got, err := Decode(format, out, "f")
		require.NoError(t, err)
		assert.Equal(t, f.Text, got.Text, format.String())
		assert.Equal(t, 0, got.MaxLength, format.String())
	}
}

func TestEncodeInvalidJSON(t *testing.T) {
	_, err := Encode(FormatJSON, []byte("{"), "f", NewField("f"))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
		{ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{ParseError{Path: "a.toml", Line: 3, Column: 4, Message: "bad"}, "parse error in a.toml at line 3, column 4: bad"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestNegativeMaxLengthDecodesUnbounded(t *testing.T) {
	f, err := Decode(FormatYAML, []byte("f:\n  max_length: -5\n"), "f")
	require.NoError(t, err)
	assert.Equal(t, buffer.NoLimit, f.MaxLength)
	assert.Equal(t, "f", f.Label)
}
