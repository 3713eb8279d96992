package model

import "testing"

// TestProgressSamplePercentRemaining verifies the percentage math that drives
// heuristic progress output, including the division-by-zero floor.
func TestProgressSamplePercentRemaining(t *testing.T) {
	t.Parallel()

	t.Run("37 of 100 leaves 63 percent and 63 units", func(t *testing.T) {
		t.Parallel()
		s := NewProgressSample(37, 100)
		if got := s.Remaining(); got != 63 {
			t.Errorf("expected remaining 63, got %d", got)
		}
		if got := s.PercentRemaining(); got != 63 {
			t.Errorf("expected percent remaining 63, got %d", got)
		}
	})

	t.Run("zero completed leaves 100 percent", func(t *testing.T) {
		t.Parallel()
		s := NewProgressSample(0, 50)
		if got := s.PercentRemaining(); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("all completed leaves 0 percent", func(t *testing.T) {
		t.Parallel()
		s := NewProgressSample(50, 50)
		if got := s.PercentRemaining(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("zero total is floored to one", func(t *testing.T) {
		t.Parallel()
		s := NewProgressSample(0, 0)
		if s.Total != 1 {
			t.Errorf("expected total floored to 1, got %d", s.Total)
		}
		if got := s.PercentRemaining(); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("completed above total is clamped", func(t *testing.T) {
		t.Parallel()
		s := NewProgressSample(120, 100)
		if got := s.Remaining(); got != 0 {
			t.Errorf("expected remaining 0, got %d", got)
		}
		if got := s.PercentRemaining(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("percent stays within bounds for every completed value", func(t *testing.T) {
		t.Parallel()
		const total = 100
		for completed := 0; completed <= total; completed++ {
			pct := NewProgressSample(completed, total).PercentRemaining()
			if pct < 0 || pct > 100 {
				t.Fatalf("completed=%d: percent %d out of [0,100]", completed, pct)
			}
		}
	})
}

// TestStrategyString pins the names recorded in reports and the history DB.
func TestStrategyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strategy Strategy
		want     string
	}{
		{StrategyHeuristic, "heuristic"},
		{StrategyExactStreaming, "exact-streaming"},
		{Strategy(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}

// TestRunSummaryFailed counts non-zero exits only.
func TestRunSummaryFailed(t *testing.T) {
	t.Parallel()

	summary := &RunSummary{
		Jobs: []JobResult{
			{Ordinal: 1, ExitCode: 0},
			{Ordinal: 2, ExitCode: 1},
			{Ordinal: 3, ExitCode: -1},
		},
	}
	if got := summary.Failed(); got != 2 {
		t.Errorf("expected 2 failed jobs, got %d", got)
	}
}

// TestJobStateString covers the lifecycle state names used in debug logs.
func TestJobStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state JobState
		want  string
	}{
		{JobPending, "pending"},
		{JobLaunching, "launching"},
		{JobRunning, "running"},
		{JobCompleted, "completed"},
		{JobState(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("JobState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
