// Package makefile extracts variable assignments from port Makefiles.
//
// Only a small subset of make syntax matters here: comments introduced by
// '#' (escaped as '\#'), logical lines continued with a trailing backslash,
// and top-level VARIABLE=value assignments.
package makefile

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// sentinel temporarily stands in for an escaped comment marker while
// trailing comments are stripped. NUL cannot appear in a text Makefile.
const sentinel = "\x00"

var trailingComment = regexp.MustCompile(`[ \t]*#.*`)

// Scanner yields the logical lines of a Makefile: comments stripped,
// escaped comment markers preserved as literal '#', and backslash-continued
// lines joined. Like bufio.Scanner it reads its input once and is not
// restartable.
type Scanner struct {
	src     *bufio.Scanner
	pending string
	line    string
}

// NewScanner creates a Scanner reading raw Makefile text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{src: bufio.NewScanner(r)}
}

// Scan advances to the next non-empty logical line, reporting whether one is
// available. A continuation left dangling at end of input is discarded.
func (s *Scanner) Scan() bool {
	for s.src.Scan() {
		line := s.pending + strip(s.src.Text())
		s.pending = ""

		if line == "" {
			continue
		}
		if strings.HasSuffix(line, `\`) {
			s.pending = strings.TrimSuffix(line, `\`)
			continue
		}

		s.line = line
		return true
	}
	return false
}

// Text returns the current logical line.
func (s *Scanner) Text() string {
	return s.line
}

// Err returns the first error encountered while reading the input.
func (s *Scanner) Err() error {
	return s.src.Err()
}

// strip trims a raw line and removes any trailing comment. An escaped
// comment marker is swapped for a sentinel first so that only unescaped '#'
// terminates the line, then restored as a literal '#'.
func strip(raw string) string {
	if !strings.Contains(raw, "#") {
		return strings.TrimSpace(raw)
	}
	if strings.Contains(raw, `\#`) {
		line := strings.ReplaceAll(raw, `\#`, sentinel)
		line = trailingComment.ReplaceAllString(strings.TrimSpace(line), "")
		return strings.ReplaceAll(line, sentinel, "#")
	}
	return trailingComment.ReplaceAllString(strings.TrimSpace(raw), "")
}
