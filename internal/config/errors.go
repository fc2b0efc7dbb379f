package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFieldNotFound indicates the label path does not exist in the document.
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidLabel indicates a malformed label path.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrUnknownFormat indicates a file extension with no codec.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrTypeMismatch indicates a field value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError represents an error while parsing a configuration document.
type ParseError struct {
	// Path is the file path (or "<bytes>") that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
