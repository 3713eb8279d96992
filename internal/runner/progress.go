package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/subfuzz/subfuzz/internal/model"
)

// Reporter formats user-visible progress. It is pure formatting: the only
// throttling state (the last emitted percentage) lives in the job loop's
// percentTracker, not here.
type Reporter struct {
	out    io.Writer
	banner *color.Color
	label  *color.Color
}

// NewReporter creates a Reporter writing to out. A nil out means stdout.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:    out,
		banner: color.New(color.FgCyan, color.Bold),
		label:  color.New(color.FgHiBlack),
	}
}

// Banner announces a job before it launches: "[ordinal/total] Starting: target".
func (p *Reporter) Banner(ordinal, total int, targetText string) {
	p.banner.Fprintf(p.out, "[%d/%d] Starting: %s\n", ordinal, total, targetText)
}

// Progress renders one heuristic progress block. The caller emits it only
// when the remaining percentage changed since the last block.
func (p *Reporter) Progress(targetText, wordlistName string, s model.ProgressSample, logPath string) {
	p.label.Fprint(p.out, "  target    : ")
	fmt.Fprintln(p.out, targetText)
	p.label.Fprint(p.out, "  wordlist  : ")
	fmt.Fprintf(p.out, "%s (%d entries)\n", wordlistName, s.Total)
	p.label.Fprint(p.out, "  completed : ")
	fmt.Fprintf(p.out, "%d\n", s.Completed)
	p.label.Fprint(p.out, "  remaining : ")
	fmt.Fprintf(p.out, "%d (%d%%)\n", s.Remaining(), s.PercentRemaining())
	p.label.Fprint(p.out, "  log       : ")
	fmt.Fprintln(p.out, logPath)
}

// percentTracker is the anti-flood throttle for heuristic progress: a block
// is emitted exactly once per distinct remaining-percentage value, no
// matter how often the poll ticks.
type percentTracker struct {
	last int
}

// newPercentTracker returns a tracker that emits on the first observation.
func newPercentTracker() *percentTracker {
	return &percentTracker{last: -1}
}

// shouldEmit reports whether pct differs from the last emitted value and
// records it as emitted when it does.
func (t *percentTracker) shouldEmit(pct int) bool {
	if pct == t.last {
		return false
	}
	t.last = pct
	return true
}
