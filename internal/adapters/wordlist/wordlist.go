// Package wordlist streams candidate passphrases from a file, one
// per line, tolerating either LF or CRLF line endings and preserving
// internal whitespace (spec.md §6). Filtering candidates by length is
// the dictionary-attack driver's job, not this package's; Scan yields
// every line unmodified except for its stripped terminator.
package wordlist

import (
	"bufio"
	"io"
)

// ScanFunc is called once per candidate line (terminator already
// stripped). Returning false stops the scan early.
type ScanFunc func(line []byte) (cont bool)

// Scan reads r line by line, invoking fn for each line with its
// trailing LF or CRLF removed. It does not allocate a slice per line
// beyond what bufio.Scanner's internal buffer requires; callers that
// retain a line beyond the fn call must copy it.
func Scan(r io.Reader, fn ScanFunc) error {
	scanner := bufio.NewScanner(r)
	// Some wordlists (rockyou-class) contain lines far longer than
	// bufio.Scanner's 64KiB default token limit; WPA2 candidates are
	// bounded at 63 bytes anyway (the driver rejects them), so the
	// limit is raised to 1 MiB to let such lines pass through; a line
	// longer than that still ends the scan with bufio.ErrTooLong.
	const maxLineSize = 1 << 20
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if !fn(scanner.Bytes()) {
			return nil
		}
	}
	return scanner.Err()
}

// Count returns the number of lines in r, for progress reporting. It
// consumes r.
func Count(r io.Reader) (int, error) {
	n := 0
	err := Scan(r, func([]byte) bool {
		n++
		return true
	})
	return n, err
}

// Source adapts an io.Reader into a ports.CandidateSource, so the
// crack driver can iterate a wordlist file without importing this
// adapter package directly.
type Source struct {
	r io.Reader
}

// NewSource wraps r as a single-pass candidate source. r is consumed
// by the first (and only) call to Each.
func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

// Each implements ports.CandidateSource.
func (s *Source) Each(fn func(candidate []byte) bool) error {
	return Scan(s.r, fn)
}
