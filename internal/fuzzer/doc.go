// Package fuzzer constructs the external fuzzer's command line.
//
// Commands are always built as ordered argument lists, never as a single
// shell string, so target text can never introduce quoting ambiguity.
// Caller passthrough arguments are appended last; ffuf lets later flags
// override earlier ones, which makes the built-in options defaults rather
// than mandates.
package fuzzer
