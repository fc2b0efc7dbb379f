package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads the field stored under label in the file at path.
// A missing file yields ErrFieldNotFound.
func Load(path, label string) (Field, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Field{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Field{}, fmt.Errorf("%w: %s (no file %s)", ErrFieldNotFound, label, path)
		}
		return Field{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	f, err := Decode(format, data, label)
	return f, withPath(err, path)
}

// Save stores f under label in the file at path, creating the file if
// needed. The file is replaced atomically.
func Save(path, label string, f Field) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	out, err := Encode(format, data, label, f)
	if err != nil {
		return withPath(err, path)
	}

	return writeFileAtomic(path, out)
}

// withPath fills in the file path of a ParseError.
func withPath(err error, path string) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Path = path
	}
	return err
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
