package model

import "time"

// Strategy identifies how progress is reported while the external fuzzer runs.
// It is selected once per run from the detected host capabilities, not per
// target, so a single run never mixes strategies.
//
// Design decision: We use a tagged constant rather than duck-typed branching
// scattered through the job loop. The runner switches on the strategy exactly
// once per job, and everything downstream (reports, history) records which
// variant was active.
type Strategy int

const (
	// StrategyHeuristic estimates completion by polling the fuzzer's partial
	// results file at a fixed interval. This is the fallback when exact
	// streaming is unavailable.
	StrategyHeuristic Strategy = iota

	// StrategyExactStreaming pipes the wordlist through a counting utility
	// (pv) into the fuzzer's stdin. The utility renders a byte-accurate
	// progress bar itself, so no estimation is needed.
	StrategyExactStreaming
)

// String returns a human-readable strategy name used in logs, reports,
// and the run-history database.
func (s Strategy) String() string {
	switch s {
	case StrategyExactStreaming:
		return "exact-streaming"
	case StrategyHeuristic:
		return "heuristic"
	default:
		return "unknown"
	}
}

// JobState tracks the lifecycle of a single job.
// Transitions are strictly Pending -> Launching -> Running -> Completed.
// There is no retry state: a failed fuzzer invocation is Completed with
// whatever exit status it produced.
type JobState int

const (
	// JobPending means the job has been constructed but not started.
	JobPending JobState = iota

	// JobLaunching means the fuzzer process is being spawned.
	JobLaunching

	// JobRunning means the fuzzer process is alive and supervised.
	JobRunning

	// JobCompleted means the fuzzer process has exited. This state is
	// always reached; the runner blocks until the process exits.
	JobCompleted
)

// String returns the state name for logging.
func (s JobState) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobLaunching:
		return "launching"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// JobResult is the recorded outcome of one fuzzer invocation against one
// target. A non-zero ExitCode never aborts the run; it is visible here and
// in the target's log file only.
type JobResult struct {
	// Ordinal is the target's 1-based position in the enumerated list.
	Ordinal int `json:"ordinal"`

	// Target is the normalized target text (scheme-less host or full URL).
	Target string `json:"target"`

	// SafeName is the filesystem-safe identifier derived from Target.
	SafeName string `json:"safe_name"`

	// Strategy is the progress strategy that supervised this job.
	Strategy Strategy `json:"strategy"`

	// ExitCode is the fuzzer process exit code. Zero on success; -1 if the
	// process could not be started at all.
	ExitCode int `json:"exit_code"`

	// LogPath is the per-target log file capturing the fuzzer's combined
	// stdout and stderr.
	LogPath string `json:"log_path"`

	// Duration is the wall-clock time from launch to process exit.
	Duration time.Duration `json:"duration"`

	// Error holds a launch-failure message, if any. Process-level failures
	// after a successful launch are reflected in ExitCode instead.
	Error string `json:"error,omitempty"`
}

// RunSummary aggregates the results of a whole run. It is rendered by the
// report writers and persisted to the run-history database.
type RunSummary struct {
	// StartedAt is the run timestamp, also used to name the run directory.
	StartedAt time.Time `json:"started_at"`

	// RootDir is the timestamped output directory containing one
	// subdirectory per target.
	RootDir string `json:"root_dir"`

	// Wordlist is the path of the shared wordlist.
	Wordlist string `json:"wordlist"`

	// Strategy is the progress strategy selected for the run.
	Strategy Strategy `json:"strategy"`

	// Jobs holds one result per processed target, in ordinal order.
	Jobs []JobResult `json:"jobs"`

	// Interrupted is true when the run stopped early on a signal.
	Interrupted bool `json:"interrupted,omitempty"`
}

// Failed returns how many jobs exited non-zero or failed to launch.
func (r *RunSummary) Failed() int {
	n := 0
	for _, j := range r.Jobs {
		if j.ExitCode != 0 {
			n++
		}
	}
	return n
}

// ProgressSample is a point-in-time completion estimate used in heuristic
// mode. Samples are recomputed on a fixed interval, never persisted, and
// superseded by the next sample.
type ProgressSample struct {
	// Completed is the number of result records counted so far.
	Completed int

	// Total is the wordlist line count for the job, floored to 1 at
	// construction so percentage math never divides by zero.
	Total int
}

// NewProgressSample builds a sample, flooring total to 1 and clamping
// completed into [0, total].
func NewProgressSample(completed, total int) ProgressSample {
	if total < 1 {
		total = 1
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return ProgressSample{Completed: completed, Total: total}
}

// Remaining returns max(0, total-completed).
func (p ProgressSample) Remaining() int {
	if r := p.Total - p.Completed; r > 0 {
		return r
	}
	return 0
}

// PercentRemaining returns 100 - floor(completed*100/total), always in
// [0, 100] for any completed in [0, total].
func (p ProgressSample) PercentRemaining() int {
	total := p.Total
	if total < 1 {
		total = 1
	}
	pct := 100 - p.Completed*100/total
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
