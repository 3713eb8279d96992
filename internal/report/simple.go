package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/subfuzz/subfuzz/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Per-job progress output already carries the color
type SimpleWriter struct {
	baseWriter

	// verbose enables per-job error detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-job error messages.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeJobs(&sb, summary)
	w.writeFooter(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SUBFUZZ RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Started:    %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Output:     %s\n", summary.RootDir))
	sb.WriteString(fmt.Sprintf("Wordlist:   %s\n", summary.Wordlist))
	sb.WriteString(fmt.Sprintf("Strategy:   %s\n", summary.Strategy))

	switch {
	case summary.Interrupted:
		sb.WriteString("Status:     INTERRUPTED (partial results)\n")
	case summary.Failed() > 0:
		sb.WriteString(fmt.Sprintf("Status:     %d of %d targets failed\n", summary.Failed(), len(summary.Jobs)))
	default:
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeJobs writes one line per job with its outcome.
func (w *SimpleWriter) writeJobs(sb *strings.Builder, summary *model.RunSummary) {
	if len(summary.Jobs) == 0 {
		sb.WriteString("No targets were processed.\n\n")
		return
	}

	sb.WriteString("Targets:\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, job := range summary.Jobs {
		status := "ok"
		if job.ExitCode != 0 {
			status = fmt.Sprintf("FAILED (exit %d)", job.ExitCode)
		}
		sb.WriteString(fmt.Sprintf("  [%d/%d] %-40s %-18s %s\n",
			job.Ordinal, len(summary.Jobs), job.Target, status, formatDuration(job.Duration)))

		if w.verbose && job.Error != "" {
			sb.WriteString(fmt.Sprintf("         error: %s\n", job.Error))
		}
		if w.verbose {
			sb.WriteString(fmt.Sprintf("         log:   %s\n", job.LogPath))
		}
	}

	sb.WriteString("\n")
}

// writeFooter writes the closing pointer to the output directory.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Full logs are under %s\n", summary.RootDir))
}

// formatDuration renders a duration at second granularity for the listing.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
