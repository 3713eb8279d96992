package fuzzer

import (
	"slices"
	"testing"
)

func testOptions() Options {
	return Options{
		URLTemplate:    "https://a.example.com/FUZZ",
		RecursionDepth: 3,
		MatchCodes:     "200",
		UserAgent:      "subfuzz/1.0",
		Passthrough:    []string{"-rate", "50"},
	}
}

// TestStreamArgs verifies the piped-input command shape.
func TestStreamArgs(t *testing.T) {
	t.Parallel()

	args := StreamArgs(testOptions())

	want := []string{
		"-u", "https://a.example.com/FUZZ",
		"-w", "-",
		"-recursion", "-recursion-depth", "3",
		"-ic", "-v",
		"-mc", "200",
		"-H", "User-Agent: subfuzz/1.0",
		"-rate", "50",
	}
	if !slices.Equal(args, want) {
		t.Errorf("StreamArgs() = %v, want %v", args, want)
	}
}

// TestFileArgs verifies the results-file command shape.
func TestFileArgs(t *testing.T) {
	t.Parallel()

	args := FileArgs(testOptions(), "/tmp/words.txt", "/tmp/out.json")

	want := []string{
		"-u", "https://a.example.com/FUZZ",
		"-w", "/tmp/words.txt",
		"-o", "/tmp/out.json",
		"-of", "json",
		"-recursion", "-recursion-depth", "3",
		"-ic", "-v",
		"-mc", "200",
		"-H", "User-Agent: subfuzz/1.0",
		"-rate", "50",
	}
	if !slices.Equal(args, want) {
		t.Errorf("FileArgs() = %v, want %v", args, want)
	}
}

// TestPassthroughIsAppendedLast confirms caller arguments can override the
// built-in defaults (later flags win in ffuf).
func TestPassthroughIsAppendedLast(t *testing.T) {
	t.Parallel()

	o := testOptions()
	o.Passthrough = []string{"-mc", "200,301,403"}

	args := StreamArgs(o)
	if len(args) < 2 {
		t.Fatal("unexpectedly short argument list")
	}
	if args[len(args)-2] != "-mc" || args[len(args)-1] != "200,301,403" {
		t.Errorf("passthrough not appended last: %v", args)
	}
}

// TestOptionalFlagsAreOmitted verifies zero-valued options drop their flags.
func TestOptionalFlagsAreOmitted(t *testing.T) {
	t.Parallel()

	o := Options{URLTemplate: "https://x.test/FUZZ"}
	args := StreamArgs(o)

	for _, forbidden := range []string{"-recursion", "-mc", "-H"} {
		if slices.Contains(args, forbidden) {
			t.Errorf("expected %s to be omitted, got %v", forbidden, args)
		}
	}
}
