// Package parse extracts numeric values from the loosely structured
// text emitted by the sg3-utils family of tools. The tool output is
// human-oriented and changes between firmware revisions, so extraction
// is tolerant of garbage around the value itself.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedNumber is returned when a token that must carry a
// numeric value cannot be parsed at all.
var ErrMalformedNumber = errors.New("malformed numeric token")

// FirstInt scans s left to right, skips everything up to the first
// decimal digit and accumulates the maximal digit run that follows.
// It reports false when s contains no digits at all.
//
// FirstInt never fails: sensor fields that are missing or mangled are
// safer reported as absent than as a hard error.
func FirstInt(s string) (int64, bool) {
	var n int64
	found := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			found = true
			n = n*10 + int64(r-'0')
			continue
		}
		if found {
			break
		}
	}
	if !found {
		return 0, false
	}
	return n, true
}

// Float parses a whitespace-delimited token strictly as a decimal
// floating-point literal. Unlike FirstInt there is no safe default
// for a malformed value, so failures wrap ErrMalformedNumber.
func Float(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, tok)
	}
	return v, nil
}

// After returns the trimmed remainder of line after the first
// occurrence of marker, and whether the marker was present.
func After(line, marker string) (string, bool) {
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(line[i+len(marker):]), true
}
