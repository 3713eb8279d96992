package fuzzer

import "strconv"

// StdinSource is the wordlist designator that tells the fuzzer to read
// candidates from its standard input instead of a file.
const StdinSource = "-"

// Options describes one fuzzer invocation. The zero value is not useful;
// populate every field from the run configuration (with per-target
// overrides already merged in).
type Options struct {
	// URLTemplate is the target URL containing the fuzz marker.
	URLTemplate string

	// RecursionDepth enables recursive crawling when positive.
	RecursionDepth int

	// MatchCodes is the comma-separated HTTP status match filter.
	MatchCodes string

	// UserAgent is sent with every request.
	UserAgent string

	// Passthrough arguments are appended last, after everything built in.
	Passthrough []string
}

// baseArgs returns the fixed options shared by both progress strategies:
// recursive crawl, case-insensitive matching, verbose output, the status
// filter, and the fixed User-Agent header.
func baseArgs(o Options) []string {
	args := []string{}
	if o.RecursionDepth > 0 {
		args = append(args, "-recursion", "-recursion-depth", strconv.Itoa(o.RecursionDepth))
	}
	args = append(args, "-ic", "-v")
	if o.MatchCodes != "" {
		args = append(args, "-mc", o.MatchCodes)
	}
	if o.UserAgent != "" {
		args = append(args, "-H", "User-Agent: "+o.UserAgent)
	}
	return args
}

// StreamArgs builds the exact-mode argument list: the wordlist arrives on
// stdin (piped through pv), so the wordlist argument is the stdin
// designator.
func StreamArgs(o Options) []string {
	args := []string{"-u", o.URLTemplate, "-w", StdinSource}
	args = append(args, baseArgs(o)...)
	return append(args, o.Passthrough...)
}

// FileArgs builds the heuristic-mode argument list: the wordlist is read
// from its file and structured JSON results are written to resultsPath so
// the poll loop can count completed records.
func FileArgs(o Options, wordlistPath, resultsPath string) []string {
	args := []string{
		"-u", o.URLTemplate,
		"-w", wordlistPath,
		"-o", resultsPath,
		"-of", "json",
	}
	args = append(args, baseArgs(o)...)
	return append(args, o.Passthrough...)
}
