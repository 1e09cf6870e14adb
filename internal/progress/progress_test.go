package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker("linting", 5)
	if tracker == nil {
		t.Fatal("expected tracker to be created")
	}
	if tracker.total != 5 {
		t.Errorf("total = %d, want 5", tracker.total)
	}
	if tracker.current != 0 {
		t.Errorf("current = %d, want 0", tracker.current)
	}
	if !tracker.enabled {
		t.Error("expected tracker to be enabled")
	}
}

func TestNewTrackerZeroTotal(t *testing.T) {
	tracker := NewTracker("linting", 0)
	if tracker.total != 1 {
		t.Errorf("total = %d, want 1 (minimum)", tracker.total)
	}
}

func TestTrackerIncrement(t *testing.T) {
	tracker := NewTracker("linting", 3)

	tracker.Increment()
	tracker.Increment()
	if tracker.current != 2 {
		t.Errorf("current = %d, want 2", tracker.current)
	}
}

func TestTrackerDisable(t *testing.T) {
	tracker := NewTracker("linting", 3)
	tracker.Disable()

	if tracker.enabled {
		t.Error("expected tracker to be disabled")
	}

	// Should not panic when disabled
	tracker.Increment()
	tracker.SetDescription("still linting")
	tracker.Finish()
	tracker.Clear()
}

func TestNewSpinner(t *testing.T) {
	spinner := NewSpinner("verifying")
	if spinner == nil {
		t.Fatal("expected spinner to be created")
	}
	if !spinner.enabled {
		t.Error("expected spinner to be enabled")
	}
}

func TestNewSuiteTracker(t *testing.T) {
	st := NewSuiteTracker("pre-merge", 3)
	if st.total != 3 {
		t.Errorf("total = %d, want 3", st.total)
	}
	if st.done != 0 {
		t.Errorf("done = %d, want 0", st.done)
	}
	if !st.enabled {
		t.Error("expected tracker to be enabled")
	}
}

func TestSuiteTrackerFinishLinter(t *testing.T) {
	st := NewSuiteTracker("pre-merge", 2)

	// Redirect output to buffer to keep stderr quiet during tests
	var buf bytes.Buffer
	st.output = &buf

	st.StartLinter("ruff")
	st.FinishLinter("ruff", true, "clean")
	st.StartLinter("eslint")
	st.FinishLinter("eslint", false, "2 errors, 0 warnings")
	st.Finish()

	if st.done != 2 {
		t.Errorf("done = %d, want 2", st.done)
	}

	output := buf.String()
	if !strings.Contains(output, "[PASS] ruff: clean") {
		t.Errorf("output missing pass line: %q", output)
	}
	if !strings.Contains(output, "[FAIL] eslint: 2 errors, 0 warnings") {
		t.Errorf("output missing fail line: %q", output)
	}
}

func TestSuiteTrackerSkipLinter(t *testing.T) {
	st := NewSuiteTracker("pre-merge", 1)

	var buf bytes.Buffer
	st.output = &buf

	st.SkipLinter("typescript", "verify failed: tsc not found")
	st.Finish()

	if st.done != 1 {
		t.Errorf("done = %d, want 1", st.done)
	}
	if !strings.Contains(buf.String(), "[SKIP] typescript: verify failed") {
		t.Errorf("output missing skip line: %q", buf.String())
	}
}

func TestSuiteTrackerDisable(t *testing.T) {
	st := NewSuiteTracker("pre-merge", 1)

	var buf bytes.Buffer
	st.output = &buf
	st.Disable()

	st.StartLinter("ruff")
	st.FinishLinter("ruff", true, "clean")
	st.Finish()

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
	if st.done != 0 {
		t.Errorf("done = %d, want 0 when disabled", st.done)
	}
}
