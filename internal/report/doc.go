// Package report renders run summaries in multiple output formats.
//
// The package defines a Writer interface with two implementations:
//   - SimpleWriter: human-readable text for terminal display
//   - MarkdownWriter: Markdown for documentation and sharing
//
// The CLI prints the simple form to stdout at the end of a run and also
// drops a summary.md into the run's output directory.
package report
