package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/subfuzz/subfuzz/internal/model"
)

// TestReporterBanner pins the per-job banner format.
func TestReporterBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Banner(2, 5, "a.example.com")

	if !strings.Contains(buf.String(), "[2/5] Starting: a.example.com") {
		t.Errorf("banner output = %q", buf.String())
	}
}

// TestReporterProgress verifies the progress block carries every field the
// user needs to find and interpret the job.
func TestReporterProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Progress("a.example.com", "common.txt", model.NewProgressSample(37, 100), "/tmp/run/a/a.log")

	out := buf.String()
	for _, want := range []string{
		"a.example.com",
		"common.txt (100 entries)",
		"37",
		"63 (63%)",
		"/tmp/run/a/a.log",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("progress block missing %q:\n%s", want, out)
		}
	}
}

// TestPercentTracker verifies the anti-flood throttle: across a
// monotonically non-decreasing completed sequence, each distinct
// percentage is emitted exactly once.
func TestPercentTracker(t *testing.T) {
	t.Parallel()

	t.Run("first observation always emits", func(t *testing.T) {
		t.Parallel()
		tr := newPercentTracker()
		if !tr.shouldEmit(100) {
			t.Error("expected first observation to emit")
		}
	})

	t.Run("repeated value is suppressed", func(t *testing.T) {
		t.Parallel()
		tr := newPercentTracker()
		tr.shouldEmit(80)
		if tr.shouldEmit(80) {
			t.Error("expected repeated percentage to be suppressed")
		}
	})

	t.Run("one emit per distinct percentage", func(t *testing.T) {
		t.Parallel()

		const total = 100
		completedSeq := []int{0, 0, 3, 3, 3, 10, 50, 50, 99, 100, 100}

		tr := newPercentTracker()
		emitted := make(map[int]int)
		for _, completed := range completedSeq {
			pct := model.NewProgressSample(completed, total).PercentRemaining()
			if tr.shouldEmit(pct) {
				emitted[pct]++
			}
		}

		for pct, count := range emitted {
			if count != 1 {
				t.Errorf("percentage %d emitted %d times, want 1", pct, count)
			}
		}
		// Distinct values in the sequence: 100, 97, 90, 50, 1, 0.
		if len(emitted) != 6 {
			t.Errorf("expected 6 distinct emissions, got %d (%v)", len(emitted), emitted)
		}
	})
}
