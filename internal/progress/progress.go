package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for multi-step operations.
type Tracker struct {
	bar     *progressbar.ProgressBar
	total   int
	current int
	mu      sync.Mutex
	enabled bool
}

// NewTracker creates a progress tracker writing to stderr.
func NewTracker(description string, total int) *Tracker {
	if total <= 0 {
		total = 1
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &Tracker{
		bar:     bar,
		total:   total,
		enabled: true,
	}
}

// NewSpinner creates a spinner for operations without a known step count.
func NewSpinner(description string) *Tracker {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(100),
	)

	return &Tracker{
		bar:     bar,
		enabled: true,
	}
}

// Increment advances the bar by one step.
func (t *Tracker) Increment() {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.current++
	t.bar.Add(1)
}

// SetDescription updates the bar's description.
func (t *Tracker) SetDescription(desc string) {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.bar.Describe(desc)
}

// Finish fills the bar and terminates the line.
func (t *Tracker) Finish() {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current < t.total {
		t.bar.Add(t.total - t.current)
	}
	t.bar.Finish()
	fmt.Fprintln(os.Stderr)
}

// Clear removes the bar from the terminal.
func (t *Tracker) Clear() {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.bar.Clear()
}

// Disable turns the tracker into a no-op (for --quiet and non-TTY runs).
func (t *Tracker) Disable() {
	t.enabled = false
	if t.bar != nil {
		t.bar.Clear()
	}
}

// SuiteTracker reports per-linter progress while a suite runs.
type SuiteTracker struct {
	bar     *progressbar.ProgressBar
	output  io.Writer
	total   int
	done    int
	mu      sync.Mutex
	enabled bool
}

// NewSuiteTracker creates a tracker for a suite of linters.
func NewSuiteTracker(suite string, linters int) *SuiteTracker {
	if linters <= 0 {
		linters = 1
	}

	bar := progressbar.NewOptions(linters,
		progressbar.OptionSetDescription("suite "+suite),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &SuiteTracker{
		bar:     bar,
		output:  os.Stderr,
		total:   linters,
		enabled: true,
	}
}

// StartLinter announces the linter about to run.
func (st *SuiteTracker) StartLinter(name string) {
	if !st.enabled {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.bar.Describe(fmt.Sprintf("[%d/%d] %s", st.done+1, st.total, name))
}

// FinishLinter records one linter's outcome and advances the bar.
func (st *SuiteTracker) FinishLinter(name string, passed bool, summary string) {
	if !st.enabled {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.done++
	st.bar.Add(1)
	st.bar.Clear()

	status := "PASS"
	if !passed {
		status = "FAIL"
	}
	fmt.Fprintf(st.output, "  [%s] %s: %s\n", status, name, summary)
}

// SkipLinter records a linter that did not run and advances the bar.
func (st *SuiteTracker) SkipLinter(name, reason string) {
	if !st.enabled {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.done++
	st.bar.Add(1)
	st.bar.Clear()

	fmt.Fprintf(st.output, "  [SKIP] %s: %s\n", name, reason)
}

// Finish clears the bar once the suite is complete.
func (st *SuiteTracker) Finish() {
	if !st.enabled {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.bar.Clear()
}

// Disable turns the tracker into a no-op.
func (st *SuiteTracker) Disable() {
	st.enabled = false
	if st.bar != nil {
		st.bar.Clear()
	}
}
