package runner

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/subfuzz/subfuzz/internal/capability"
	"github.com/subfuzz/subfuzz/internal/config"
	"github.com/subfuzz/subfuzz/internal/fuzzer"
	"github.com/subfuzz/subfuzz/internal/layout"
	"github.com/subfuzz/subfuzz/internal/model"
	"github.com/subfuzz/subfuzz/internal/target"
)

// Runner executes jobs strictly sequentially. A single control goroutine
// owns the loop; at most one fuzzer process is alive at any instant.
type Runner struct {
	cfg      *config.Config
	layout   *layout.Layout
	strategy model.Strategy
	reporter *Reporter
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithReporter sets a custom progress reporter. Defaults to a stdout
// reporter.
func WithReporter(rep *Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// New creates a Runner. The strategy is fixed here, once per run, from the
// detected capabilities: streaming hosts get exact progress, everything
// else falls back to the heuristic.
func New(cfg *config.Config, lay *layout.Layout, caps capability.Capabilities, opts ...Option) *Runner {
	strategy := model.StrategyHeuristic
	if caps.StreamingAvailable {
		strategy = model.StrategyExactStreaming
	}

	r := &Runner{
		cfg:      cfg,
		layout:   lay,
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.reporter == nil {
		r.reporter = NewReporter(nil)
	}
	return r
}

// Strategy returns the progress strategy selected for this run.
func (r *Runner) Strategy() model.Strategy {
	return r.strategy
}

// Run processes every target in order and returns the run summary. The
// summary is always non-nil: an interrupted run reports the jobs that
// finished before the signal arrived.
func (r *Runner) Run(ctx context.Context, targets []target.Target) *model.RunSummary {
	summary := &model.RunSummary{
		StartedAt: time.Now(),
		RootDir:   r.layout.Root(),
		Wordlist:  r.cfg.WordlistPath,
		Strategy:  r.strategy,
	}

	total := len(targets)
	for i, t := range targets {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}

		r.reporter.Banner(t.Ordinal, total, t.Raw)
		summary.Jobs = append(summary.Jobs, r.runJob(ctx, t))

		// Cool-down between targets, skipped after the last one. Trades
		// total run time for not hitting hosts back-to-back.
		if i < total-1 {
			select {
			case <-ctx.Done():
				summary.Interrupted = true
			case <-time.After(r.cfg.Cooldown):
			}
		}
	}

	if ctx.Err() != nil {
		summary.Interrupted = true
	}
	return summary
}

// runJob supervises one fuzzer invocation to completion. Launch failures
// and non-zero exits are recorded in the result, never propagated: the
// state machine has no retry state and always reaches Completed.
func (r *Runner) runJob(ctx context.Context, t target.Target) model.JobResult {
	result := model.JobResult{
		Ordinal:  t.Ordinal,
		Target:   t.Raw,
		SafeName: t.SafeName,
		Strategy: r.strategy,
	}

	state := model.JobPending
	r.logger.Debug("job state", "target", t.Raw, "state", state)

	dir, logPath, err := r.layout.TargetPaths(t.SafeName)
	if err != nil {
		result.ExitCode = -1
		result.Error = err.Error()
		return result
	}
	result.LogPath = logPath

	// The wordlist total is computed once per job and floored to 1 so the
	// progress math can never divide by zero.
	total, err := CountLines(r.cfg.WordlistPath)
	if err != nil {
		r.logger.Warn("failed to count wordlist lines", "wordlist", r.cfg.WordlistPath, "error", err)
	}
	if total < 1 {
		total = 1
	}

	opts := r.optionsFor(t)

	state = model.JobLaunching
	r.logger.Debug("job state", "target", t.Raw, "state", state)

	started := time.Now()
	var exitCode int
	switch r.strategy {
	case model.StrategyExactStreaming:
		exitCode, err = r.runExact(ctx, logPath, opts, total)
	default:
		exitCode, err = r.runHeuristic(ctx, t, dir, logPath, opts, total)
	}
	result.Duration = time.Since(started)
	result.ExitCode = exitCode

	if err != nil {
		// Launch failure. Process-level failures surface as exit codes
		// instead and stay visible only in the target's log.
		result.Error = err.Error()
		r.logger.Error("job failed to launch", "target", t.Raw, "error", err)
	} else if exitCode != 0 {
		r.logger.Warn("fuzzer exited non-zero", "target", t.Raw, "exitCode", exitCode, "log", logPath)
	}

	state = model.JobCompleted
	r.logger.Debug("job state", "target", t.Raw, "state", state, "exitCode", exitCode)

	return result
}

// optionsFor merges the run configuration with the target's config-file
// override block into one fuzzer invocation description.
func (r *Runner) optionsFor(t target.Target) fuzzer.Options {
	o := fuzzer.Options{
		URLTemplate:    t.URLTemplate,
		RecursionDepth: r.cfg.RecursionDepth,
		MatchCodes:     r.cfg.MatchCodes,
		UserAgent:      r.cfg.UserAgent,
	}

	ov := r.cfg.Overrides.For(t.Raw)
	if ov.RecursionDepth > 0 {
		o.RecursionDepth = ov.RecursionDepth
	}
	if ov.MatchCodes != "" {
		o.MatchCodes = ov.MatchCodes
	}
	if ov.UserAgent != "" {
		o.UserAgent = ov.UserAgent
	}

	// Override args come before CLI passthrough so the command line stays
	// strictly "built-ins, file overrides, user passthrough" — the most
	// specific source always wins.
	o.Passthrough = append(append([]string(nil), ov.ExtraArgs...), r.cfg.Passthrough...)
	return o
}

// exitStatus translates a Wait error into an exit code. A nil error is
// exit 0; a process that ran and failed yields its real code; anything
// else (e.g. the process never ran) is -1 with the error passed through.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
