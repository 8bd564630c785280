// Package options reads the pool of candidate cell texts from line
// separated UTF-8 text.
package options

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ErrInvalidEncoding is returned for input that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("option list is not valid UTF-8")

// Parse splits data into one option per line. Empty lines inside the list
// are kept as empty options; empty lines at the end are dropped, so a
// trailing newline does not add an option. A carriage return before each
// newline is removed.
func Parse(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	lines := lo.Map(strings.Split(string(data), "\n"), func(line string, _ int) string {
		return strings.TrimSuffix(line, "\r")
	})
	return lo.DropRightWhile(lines, func(line string) bool {
		return line == ""
	}), nil
}

// Read parses every option from r.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read option list: %w", err)
	}
	return Parse(data)
}

// Load parses the option list stored at path.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
