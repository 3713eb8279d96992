// Package main provides the entry point for the subfuzz CLI.
//
// Subfuzz runs an external web fuzzer sequentially against a list of
// subdomains with one shared wordlist, keeping per-target logs and
// reporting progress for each target.
//
// Usage:
//
//	subfuzz run --list subdomains.txt --wordlist common.txt
//	subfuzz history
//
// See --help for all available options.
package main

// main is the entry point for subfuzz.
func main() {
	Execute()
}
