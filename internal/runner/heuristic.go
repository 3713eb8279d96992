package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/subfuzz/subfuzz/internal/fuzzer"
	"github.com/subfuzz/subfuzz/internal/model"
	"github.com/subfuzz/subfuzz/internal/target"
)

// resultRecordMarker appears once per result object in the fuzzer's JSON
// output. Counting occurrences is how completed units are estimated; the
// file's config preamble never contains this key.
const resultRecordMarker = `"position":`

// runHeuristic supervises one fallback-mode job: the fuzzer reads the
// wordlist itself and writes structured results to a side file, which the
// control goroutine polls at a fixed interval to estimate completion.
//
// Known accuracy bound: the results file is read while the fuzzer may
// still be writing it, so any single sample can undercount. The next tick
// corrects it, and the estimate only drives display, so the race is
// accepted rather than synchronized away.
func (r *Runner) runHeuristic(ctx context.Context, t target.Target, dir, logPath string, opts fuzzer.Options, total int) (int, error) {
	resultsPath := filepath.Join(dir, t.SafeName+"-results.json")

	cmd := exec.CommandContext(ctx, r.cfg.FuzzerBin, fuzzer.FileArgs(opts, r.cfg.WordlistPath, resultsPath)...) //nolint:gosec // Bin comes from config

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Log path derives from the safe-name transform
	if err != nil {
		return -1, fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", r.cfg.FuzzerBin, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	// The poll loop sleeps between checks; throttling of the display is
	// percentage-based, so output stays readable no matter how fast units
	// complete.
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	wordlistName := filepath.Base(r.cfg.WordlistPath)
	tracker := newPercentTracker()

	var waitErr error
poll:
	for {
		select {
		case waitErr = <-done:
			break poll
		case <-ticker.C:
			sample := model.NewProgressSample(countResultRecords(resultsPath), total)
			if tracker.shouldEmit(sample.PercentRemaining()) {
				r.reporter.Progress(t.Raw, wordlistName, sample, logPath)
			}
		}
	}

	// The results file is a temporary estimation aid, not an artifact; the
	// log file is the durable per-target output.
	if err := os.Remove(resultsPath); err != nil && !os.IsNotExist(err) {
		r.logger.Debug("failed to remove results file", "path", resultsPath, "error", err)
	}

	return exitStatus(waitErr)
}

// countResultRecords counts completed units in the fuzzer's results file.
// A missing or partially written file is normal (the fuzzer may not have
// created it yet at the first tick) and reads as zero — never an error.
func countResultRecords(path string) int {
	data, err := os.ReadFile(path) //nolint:gosec // Path derives from the run layout
	if err != nil {
		return 0
	}
	return bytes.Count(data, []byte(resultRecordMarker))
}
