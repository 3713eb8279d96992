package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/subfuzz/subfuzz/internal/fuzzer"
)

// runExact supervises one exact-streaming job: pv reads the wordlist with
// the total line count supplied up front, piping it into the fuzzer's
// stdin. pv renders its byte-accurate progress bar on stderr as a side
// effect of piping, so no percentage math happens here at all.
//
// The two child processes are the only concurrency in this mode: one pipe,
// one direction, supervised together. Completion is implicit in process
// exit.
func (r *Runner) runExact(ctx context.Context, logPath string, opts fuzzer.Options, total int) (int, error) {
	pv := exec.CommandContext(ctx, r.cfg.PVBin, "-l", "-s", strconv.Itoa(total), r.cfg.WordlistPath) //nolint:gosec // Bin and paths come from config
	// pv's progress bar goes to the user's terminal, not the log.
	pv.Stderr = os.Stderr

	fz := exec.CommandContext(ctx, r.cfg.FuzzerBin, fuzzer.StreamArgs(opts)...) //nolint:gosec // Bin comes from config

	pipe, err := pv.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("failed to create wordlist pipe: %w", err)
	}
	fz.Stdin = pipe

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Log path derives from the safe-name transform
	if err != nil {
		return -1, fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()
	fz.Stdout = logFile
	fz.Stderr = logFile

	if err := pv.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", r.cfg.PVBin, err)
	}
	if err := fz.Start(); err != nil {
		_ = pv.Process.Kill()
		_ = pv.Wait()
		return -1, fmt.Errorf("failed to start %s: %w", r.cfg.FuzzerBin, err)
	}

	// Both processes are joined before the job completes. Neither exit
	// status aborts the run; the fuzzer's code is recorded and pv's is
	// only interesting in debug logs (it dies with EPIPE when the fuzzer
	// exits first, which is normal).
	var fuzzerExit int
	var launchErr error
	g := new(errgroup.Group)
	g.Go(func() error {
		if err := pv.Wait(); err != nil {
			r.logger.Debug("pv exited with error", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		fuzzerExit, launchErr = exitStatus(fz.Wait())
		return nil
	})
	_ = g.Wait()

	return fuzzerExit, launchErr
}
