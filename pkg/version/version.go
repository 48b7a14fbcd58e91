// Package version reads the version a repository is about to release from
// the declaration at the end of its version file, e.g.
//
//	var Version = "1.2.3"
package version

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ErrNoVersion is returned when the version file holds no version token.
var ErrNoVersion = errors.New("no version found")

const quoteChars = "\"'`"

// ExtractSourceVersion returns the last token of the last non-blank line of
// the file at path, with quote characters removed.
func ExtractSourceVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read version file: %w", err)
	}
	v, err := Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse extracts the version from the contents of a version file.
func Parse(content string) (string, error) {
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	if content == "" {
		return "", ErrNoVersion
	}

	lines := strings.Split(content, "\n")
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) == 0 {
		return "", ErrNoVersion
	}

	v := strings.Map(func(r rune) rune {
		if strings.ContainsRune(quoteChars, r) {
			return -1
		}
		return r
	}, fields[len(fields)-1])
	if v == "" {
		return "", ErrNoVersion
	}
	return v, nil
}
