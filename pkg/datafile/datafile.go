// Package datafile reads and writes the JSON data files shared between
// pipeline stages, such as versions.json and the change lists.
//
// Files are written with two-space indentation and a trailing newline so that
// diffs between runs stay readable. Writes replace the destination atomically.
package datafile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/typespub/pkg/errors"
)

// Path returns the location of the data file name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}

// Exists reports whether the data file name exists inside dir.
func Exists(dir, name string) bool {
	_, err := os.Stat(Path(dir, name))
	return err == nil
}

// Read decodes the data file name inside dir into v. A missing file is a
// NOT_FOUND error; a file that is not valid JSON is a VALIDATION_FAILED error.
func Read(dir, name string, v any) error {
	path := Path(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "data file %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err, "parse %s", path)
	}
	return nil
}

// Write encodes v as indented JSON into the data file name inside dir,
// creating dir if needed.
func Write(dir, name string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
	}

	path := Path(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Marshal renders v the way Write stores it.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
