package config

import "errors"

// Configuration validation errors.
//
// Design decision: package-level sentinel errors rather than ad-hoc
// errors.New calls inside Validate(). Callers can use errors.Is() for
// programmatic handling while the messages stay human-readable.
var (
	// ErrNoTargetList is returned when no target list file is specified.
	ErrNoTargetList = errors.New("no target list specified: use --list")

	// ErrNoWordlist is returned when no wordlist file is specified.
	ErrNoWordlist = errors.New("no wordlist specified: use --wordlist")

	// ErrNoFuzzerBin is returned when the fuzzer binary name is empty.
	ErrNoFuzzerBin = errors.New("fuzzer binary must not be empty")

	// ErrInvalidPollInterval is returned when the heuristic poll interval
	// is not positive. A zero interval would busy-wait on the results file.
	ErrInvalidPollInterval = errors.New("invalid poll interval: must be positive")

	// ErrInvalidCooldown is returned when the inter-target cooldown is
	// negative. Use 0 to disable the pause between jobs.
	ErrInvalidCooldown = errors.New("invalid cooldown: must be non-negative")

	// ErrInvalidRecursionDepth is returned when the recursion depth is
	// negative. Use 0 to disable recursive crawling.
	ErrInvalidRecursionDepth = errors.New("invalid recursion depth: must be non-negative")
)
