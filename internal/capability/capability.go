package capability

import (
	"context"
	"os/exec"
	"strings"
)

// Capabilities is the result of host detection, computed once per run.
type Capabilities struct {
	// StreamingAvailable is true when the wordlist can be piped through pv
	// into the fuzzer's stdin for exact progress reporting.
	StreamingAvailable bool
}

// Detector performs the host capability checks. The lookup and help-output
// functions are injectable so tests can simulate any host without touching
// PATH or spawning processes.
type Detector struct {
	fuzzerBin string
	pvBin     string

	lookPath   func(file string) (string, error)
	helpOutput func(ctx context.Context, bin string) (string, error)
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithLookPath replaces the PATH lookup function. Used in tests.
func WithLookPath(fn func(file string) (string, error)) DetectorOption {
	return func(d *Detector) {
		d.lookPath = fn
	}
}

// WithHelpOutput replaces the function that captures the fuzzer's help
// output. Used in tests.
func WithHelpOutput(fn func(ctx context.Context, bin string) (string, error)) DetectorOption {
	return func(d *Detector) {
		d.helpOutput = fn
	}
}

// NewDetector creates a Detector for the given fuzzer and pv binaries.
func NewDetector(fuzzerBin, pvBin string, opts ...DetectorOption) *Detector {
	d := &Detector{
		fuzzerBin: fuzzerBin,
		pvBin:     pvBin,
		lookPath:  exec.LookPath,
		helpOutput: func(ctx context.Context, bin string) (string, error) {
			// Most fuzzers (ffuf included) exit non-zero on -h; the output
			// is what matters, so the error is deliberately dropped when
			// output was produced.
			out, err := exec.CommandContext(ctx, bin, "-h").CombinedOutput() //nolint:gosec // Bin comes from config
			if len(out) == 0 && err != nil {
				return "", err
			}
			return string(out), nil
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect reports the host capabilities. It is a pure query with no side
// effects and cannot fail: any missing piece degrades the result to a
// false StreamingAvailable, never an error.
//
// Checks run in order: pv on PATH first (cheap), then the fuzzer's help
// output. The help check looks for a wordlist flag, which is a proxy for
// piped-input support, not a guarantee.
func (d *Detector) Detect(ctx context.Context) Capabilities {
	if _, err := d.lookPath(d.pvBin); err != nil {
		return Capabilities{}
	}

	help, err := d.helpOutput(ctx, d.fuzzerBin)
	if err != nil {
		return Capabilities{}
	}
	if !strings.Contains(help, "-w") && !strings.Contains(strings.ToLower(help), "wordlist") {
		return Capabilities{}
	}

	return Capabilities{StreamingAvailable: true}
}
