package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/subfuzz/subfuzz/internal/model"
)

func sampleSummary() *model.RunSummary {
	return &model.RunSummary{
		StartedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		RootDir:   "/tmp/subfuzz-20260825-100000",
		Wordlist:  "/usr/share/wordlists/common.txt",
		Strategy:  model.StrategyHeuristic,
		Jobs: []model.JobResult{
			{
				Ordinal:  1,
				Target:   "admin.example.com",
				SafeName: "admin.example.com",
				Strategy: model.StrategyHeuristic,
				ExitCode: 0,
				LogPath:  "/tmp/subfuzz-20260825-100000/admin.example.com/admin.example.com.log",
				Duration: 95 * time.Second,
			},
			{
				Ordinal:  2,
				Target:   "api.example.com",
				SafeName: "api.example.com",
				Strategy: model.StrategyHeuristic,
				ExitCode: 2,
				LogPath:  "/tmp/subfuzz-20260825-100000/api.example.com/api.example.com.log",
				Duration: 3 * time.Second,
				Error:    "exit status 2",
			},
		},
	}
}

// TestSimpleWriter verifies the terminal summary contains the run facts a
// user needs to locate their results.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists every target with its status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(sampleSummary())
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"SUBFUZZ RUN SUMMARY",
			"/tmp/subfuzz-20260825-100000",
			"/usr/share/wordlists/common.txt",
			"heuristic",
			"admin.example.com",
			"FAILED (exit 2)",
			"1 of 2 targets failed",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("verbose mode includes error and log path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(sampleSummary()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "error: exit status 2") {
			t.Errorf("verbose output missing error detail:\n%s", out)
		}
		if !strings.Contains(out, "api.example.com/api.example.com.log") {
			t.Errorf("verbose output missing log path:\n%s", out)
		}
	})

	t.Run("interrupted run is marked", func(t *testing.T) {
		t.Parallel()

		summary := sampleSummary()
		summary.Interrupted = true

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(summary); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "INTERRUPTED") {
			t.Errorf("output missing interrupted status:\n%s", buf.String())
		}
	})

	t.Run("empty run says so", func(t *testing.T) {
		t.Parallel()

		summary := sampleSummary()
		summary.Jobs = nil

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(summary); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "No targets were processed") {
			t.Errorf("output missing empty-run notice:\n%s", buf.String())
		}
	})
}

// TestMarkdownWriter verifies the markdown summary renders the results table.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	if _, err := w.Write(sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Subfuzz Run Summary",
		"## Targets",
		"| Property | Value |",
		"`admin.example.com`",
		"exit 2",
		"heuristic",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

// TestMultiWriter verifies one summary fans out to several destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewMarkdownWriter(&b))

	if _, err := mw.Write(sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Errorf("expected both destinations written, got %d and %d bytes", a.Len(), b.Len())
	}
}
