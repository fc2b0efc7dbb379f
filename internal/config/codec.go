package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// source names the document in parse errors.
const source = "<bytes>"

// Decode reads the field stored under label in data.
func Decode(format Format, data []byte, label string) (Field, error) {
	if err := validateLabel(label); err != nil {
		return Field{}, err
	}

	if format == FormatJSON {
		return decodeJSON(data, label)
	}

	doc, err := parseDocument(format, data)
	if err != nil {
		return Field{}, err
	}
	table, err := getByPath(doc, label)
	if err != nil {
		return Field{}, err
	}
	return fieldFromMap(label, table)
}

// Encode stores f under label in data and returns the updated document.
// Other content of data is preserved; data may be empty.
func Encode(format Format, data []byte, label string, f Field) ([]byte, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	if format == FormatJSON {
		return encodeJSON(data, label, f)
	}

	doc, err := parseDocument(format, data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	setByPath(doc, label, f.toMap())

	switch format {
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// parseDocument decodes a TOML or YAML document into nested tables.
func parseDocument(format Format, data []byte) (map[string]any, error) {
	var doc map[string]any
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return doc, nil
}

func decodeJSON(data []byte, label string) (Field, error) {
	if !gjson.ValidBytes(data) {
		return Field{}, &ParseError{Path: source, Message: "invalid JSON"}
	}

	res, err := getJSONObject(data, label)
	if err != nil {
		return Field{}, err
	}

	table, ok := res.Value().(map[string]any)
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrTypeMismatch, label)
	}
	return fieldFromMap(label, table)
}

// getJSONObject resolves label one segment at a time so missing and
// non-object segments report the same errors as getByPath.
func getJSONObject(data []byte, label string) (gjson.Result, error) {
	var res gjson.Result
	parts := strings.Split(label, ".")
	for i := range parts {
		prefix := strings.Join(parts[:i+1], ".")
		res = gjson.GetBytes(data, prefix)
		if !res.Exists() {
			return res, fmt.Errorf("%w: %s", ErrFieldNotFound, label)
		}
		if !res.IsObject() {
			return res, fmt.Errorf("%w: %s: expected table, got %s", ErrTypeMismatch, prefix, res.Type)
		}
	}
	return res, nil
}

func encodeJSON(data []byte, label string, f Field) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	} else if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}

	out, err := sjson.SetBytes(data, label, f.toMap())
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", label, err)
	}
	return out, nil
}
