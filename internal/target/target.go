package target

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/subfuzz/subfuzz/internal/layout"
)

// FuzzMarker is the placeholder token the external fuzzer substitutes each
// wordlist entry into. ffuf's default keyword.
const FuzzMarker = "FUZZ"

// ErrNotReadable is returned when the target list file cannot be opened.
// This is fatal: no job runs before the list is fully enumerated.
var ErrNotReadable = errors.New("target list is not readable")

// Target is one normalized entry from the target list. Created by Load and
// immutable thereafter.
type Target struct {
	// Raw is the normalized line text (trimmed, trailing slashes stripped).
	Raw string

	// Ordinal is the 1-based position among non-skipped entries.
	Ordinal int

	// SafeName is the filesystem-safe identifier derived from Raw.
	SafeName string

	// URLTemplate is the fuzz URL: the raw text with a scheme (https://
	// defaulted when absent) and the fuzz marker appended after a single
	// separating slash.
	URLTemplate string
}

// Load reads the target list at path and returns the ordered, finite
// sequence of targets. Lines are normalized with Normalize; empty results
// and comments are skipped without consuming an ordinal.
func Load(path string) ([]Target, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotReadable, path, err)
	}
	defer f.Close()

	var targets []Target
	ordinal := 0

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := Normalize(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ordinal++
		targets = append(targets, Target{
			Raw:         line,
			Ordinal:     ordinal,
			SafeName:    layout.SafeName(line),
			URLTemplate: Template(line),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotReadable, path, err)
	}

	return targets, nil
}

// Normalize strips carriage returns, leading/trailing whitespace, and
// trailing slash runs from a raw line. It is idempotent:
// Normalize(Normalize(x)) == Normalize(x) for all x.
func Normalize(line string) string {
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.TrimSpace(line)
	line = strings.TrimRight(line, "/")
	return strings.TrimSpace(line)
}

// Template derives the fuzz URL template for a normalized target. An
// existing http:// or https:// scheme is preserved; otherwise https:// is
// prepended. The fuzz marker is appended after a single separating slash.
func Template(normalized string) string {
	u := normalized
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u + "/" + FuzzMarker
}
