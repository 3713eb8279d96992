package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultFuzzerBin is the external fuzzer binary name resolved on PATH.
	DefaultFuzzerBin = "ffuf"

	// DefaultPVBin is the line-counting pipe utility used for exact
	// streaming progress. pv renders its own byte-accurate progress bar
	// while piping the wordlist into the fuzzer.
	DefaultPVBin = "pv"

	// DefaultPollInterval is how often heuristic mode inspects the fuzzer's
	// partial results file. One second keeps output responsive without
	// hammering the filesystem; display throttling is percentage-based,
	// not time-based, so a shorter interval would not flood the terminal
	// anyway.
	DefaultPollInterval = 1 * time.Second

	// DefaultCooldown is the pause after each job before the next target is
	// picked up. A fixed one-second cool-down trades total run time for not
	// hitting consecutive hosts back-to-back, which can trip rate limits.
	DefaultCooldown = 1 * time.Second

	// DefaultRecursionDepth is passed to the fuzzer's recursive crawl.
	// Depth 3 finds nested paths on typical applications without letting
	// recursion dominate the run.
	DefaultRecursionDepth = 3

	// DefaultMatchCodes is the HTTP status filter handed to the fuzzer.
	// Only 200 responses are treated as hits by default; callers can widen
	// this with passthrough arguments, which are appended last and
	// therefore override it.
	DefaultMatchCodes = "200"

	// DefaultUserAgent identifies subfuzz traffic in target logs. A fixed,
	// descriptive agent is deliberate: operators should be able to spot
	// scanner traffic.
	DefaultUserAgent = "subfuzz/1.0 (+https://github.com/subfuzz/subfuzz)"

	// AppName is the application name used for XDG directory paths.
	AppName = "subfuzz"
)

// Config holds all options for one run. It is immutable after construction:
// built from flags, validated once, then only read.
//
// Design decision: a single flat struct instead of nested sub-configs. The
// option count is manageable, and nesting would add indirection without
// benefit, mirroring how the rest of the codebase threads state explicitly
// instead of using globals.
type Config struct {
	// TargetListPath is the file with one target per line. Blank lines and
	// '#'-prefixed lines are ignored.
	TargetListPath string

	// WordlistPath is the shared newline-delimited wordlist handed to the
	// fuzzer for every target.
	WordlistPath string

	// Passthrough holds extra arguments forwarded verbatim to the fuzzer,
	// appended after all built-in arguments so they can override defaults.
	Passthrough []string

	// OutputRoot is the directory under which the timestamped run root is
	// created. Defaults to the current directory.
	OutputRoot string

	// FuzzerBin is the fuzzer binary name or path.
	FuzzerBin string

	// PVBin is the pipe-viewer binary name or path.
	PVBin string

	// PollInterval is the heuristic-mode polling interval.
	PollInterval time.Duration

	// Cooldown is the fixed pause between consecutive jobs.
	Cooldown time.Duration

	// RecursionDepth is the fuzzer's recursive crawl depth.
	RecursionDepth int

	// MatchCodes is the fuzzer's status-code match filter, comma separated.
	MatchCodes string

	// UserAgent is sent as the User-Agent header on every fuzzer request.
	UserAgent string

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool

	// ConfigFilePath is an explicit .subfuzz file path. When empty, the
	// current and home directories are searched.
	ConfigFilePath string

	// Overrides holds fuzzer-option defaults and per-target overrides
	// loaded from the config file. Never nil after buildConfig.
	Overrides *File

	// DBDir is the directory holding the run-history SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveHistory controls whether the run is recorded in the history
	// database. History failures degrade to warnings; they never affect
	// orchestration.
	SaveHistory bool
}

// NewConfig creates a Config with all defaults populated.
//
// Design decision: a constructor instead of zero values, because most
// defaults are non-zero and this documents them in one place.
func NewConfig() *Config {
	return &Config{
		OutputRoot:     ".",
		FuzzerBin:      DefaultFuzzerBin,
		PVBin:          DefaultPVBin,
		PollInterval:   DefaultPollInterval,
		Cooldown:       DefaultCooldown,
		RecursionDepth: DefaultRecursionDepth,
		MatchCodes:     DefaultMatchCodes,
		UserAgent:      DefaultUserAgent,
		DBDir:          XDGDataDir(),
		SaveHistory:    true,
	}
}

// XDGDataDir returns the XDG data directory for subfuzz.
// On Linux: ~/.local/share/subfuzz
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after CLI parsing, before any file is touched, so users get
// a clear message up front instead of a mid-run failure.
func (c *Config) Validate() error {
	if c.TargetListPath == "" {
		return ErrNoTargetList
	}
	if c.WordlistPath == "" {
		return ErrNoWordlist
	}
	if c.FuzzerBin == "" {
		return ErrNoFuzzerBin
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.Cooldown < 0 {
		return ErrInvalidCooldown
	}
	if c.RecursionDepth < 0 {
		return ErrInvalidRecursionDepth
	}
	return nil
}
