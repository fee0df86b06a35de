// Package input reads the texts to compare and rejects inputs that can't be compared.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Stdin is the name that reads from standard input.
const Stdin = "-"

// DevNull is the name of an always empty source.
const DevNull = "/dev/null"

var (
	// ErrBinary is returned for input that isn't UTF-8 encoded text.
	ErrBinary = errors.New("not a text file")

	// ErrMismatchedTypes is returned by [CheckCompatible] for files with different extensions.
	ErrMismatchedTypes = errors.New("cannot compare files of different types")
)

// Source is a text to compare.
type Source struct {
	Name string // Path as given on the command line
	Text string
}

// IsFile reports whether s was read from a named file.
func (s Source) IsFile() bool { return s.Name != Stdin && s.Name != DevNull && s.Name != "" }

// Ext returns the lower case file extension without the leading dot, or an empty string if s
// isn't a file or has no extension.
func (s Source) Ext() string {
	if !s.IsFile() {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(s.Name), "."))
}

// Read reads the source at path. [Stdin] reads standard input and /dev/null is always empty.
func Read(path string) (Source, error) {
	switch path {
	case Stdin:
		return ReadFrom(path, os.Stdin)
	case DevNull:
		return Source{Name: path}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %v", path, err)
	}
	return fromBytes(path, b)
}

// ReadFrom reads a source with the given name from r.
func ReadFrom(name string, r io.Reader) (Source, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %v", name, err)
	}
	return fromBytes(name, b)
}

func fromBytes(name string, b []byte) (Source, error) {
	if !utf8.Valid(b) || bytes.IndexByte(b, 0) >= 0 {
		return Source{}, fmt.Errorf("%s: %w", name, ErrBinary)
	}
	return Source{Name: name, Text: string(b)}, nil
}

// CheckCompatible returns an error wrapping [ErrMismatchedTypes] if a and b are both files with
// an extension and the extensions differ.
func CheckCompatible(a, b Source) error {
	ea, eb := a.Ext(), b.Ext()
	if ea != "" && eb != "" && ea != eb {
		return fmt.Errorf("%w: left is .%s, right is .%s", ErrMismatchedTypes, ea, eb)
	}
	return nil
}
