package runner

import (
	"bufio"
	"fmt"
	"os"
)

// CountLines counts newline-delimited entries in the wordlist at path.
// Every line counts, including blank ones, matching what pv -l and the
// fuzzer see when consuming the same file.
func CountLines(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided wordlist path is intentional
	if err != nil {
		return 0, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	n := 0
	s := bufio.NewScanner(f)
	// Wordlist entries can be long (e.g. raw paths); grow the line budget
	// beyond bufio's 64KB default.
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		n++
	}
	if err := s.Err(); err != nil {
		return n, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return n, nil
}
