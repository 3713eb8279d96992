// Package capability detects whether exact-progress streaming is available
// on the host.
//
// Streaming requires two things: the pv utility (which counts lines and
// renders a byte-accurate progress bar while piping) and a fuzzer whose help
// output advertises a wordlist flag, which is a proxy for accepting piped
// input as its work source. Absence of either silently selects the
// heuristic fallback; detection can never fail.
package capability
