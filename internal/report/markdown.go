package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/subfuzz/subfuzz/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing; the CLI writes
// one summary.md into each run directory.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeJobs(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table and status alert.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Subfuzz Run Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Output Directory", "`" + summary.RootDir + "`"},
			{"Wordlist", "`" + summary.Wordlist + "`"},
			{"Progress Strategy", summary.Strategy.String()},
			{"Targets", strconv.Itoa(len(summary.Jobs))},
			{"Failed", strconv.Itoa(summary.Failed())},
		},
	})
	md.PlainText("")

	switch {
	case summary.Interrupted:
		md.Warning("The run was interrupted. Results below are partial.")
	case summary.Failed() > 0:
		md.Important(strconv.Itoa(summary.Failed()) + " target(s) exited non-zero. Check the per-target logs.")
	default:
		md.Note("All targets completed successfully.")
	}
	md.PlainText("")
}

// writeJobs writes the per-target results table.
func (w *MarkdownWriter) writeJobs(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Targets")
	md.PlainText("")

	if len(summary.Jobs) == 0 {
		md.PlainText("No targets were processed.")
		return
	}

	rows := make([][]string, 0, len(summary.Jobs))
	for _, job := range summary.Jobs {
		status := "ok"
		if job.ExitCode != 0 {
			status = "exit " + strconv.Itoa(job.ExitCode)
		}
		rows = append(rows, []string{
			strconv.Itoa(job.Ordinal),
			"`" + job.Target + "`",
			job.Strategy.String(),
			status,
			formatDuration(job.Duration),
			"`" + job.LogPath + "`",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Target", "Strategy", "Status", "Duration", "Log"},
		Rows:   rows,
	})
}
