package db

import (
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate(t *testing.T) {
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := d.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Verify all tables exist
	tables := []string{"schema_version", "lint_runs", "run_events"}
	for _, table := range tables {
		var name string
		err := d.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	// Verify schema_version was recorded
	var version int
	if err := d.conn.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("query schema_version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected schema version 1, got %d", version)
	}

	// Migrate again should be idempotent
	if err := d.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var count int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = 1").Scan(&count); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 version row, got %d", count)
	}
}

func TestReset(t *testing.T) {
	d := testDB(t)

	// Insert some data
	if _, err := d.LogLintRun("repo-a", "pre-merge", "ruff", true, false, 0, 120, 0, 0, "clean", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	if err := d.LogRunEvent("repo-a", "suite_passed", "pre-merge", ""); err != nil {
		t.Fatalf("log event: %v", err)
	}

	if err := d.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var count int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM lint_runs").Scan(&count); err != nil {
		t.Fatalf("count lint_runs: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 runs after reset, got %d", count)
	}
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM run_events").Scan(&count); err != nil {
		t.Fatalf("count run_events: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 events after reset, got %d", count)
	}
}

func TestLogLintRun(t *testing.T) {
	d := testDB(t)

	id, err := d.LogLintRun("repo-a", "pre-merge", "ruff", false, true, 1, 842, 3, 1, "3 errors, 1 warnings", `[{"path":"a.py"}]`)
	if err != nil {
		t.Fatalf("log run: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero run id")
	}

	runs, err := d.GetLintHistory("repo-a")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	r := runs[0]
	if r.ID != id {
		t.Errorf("expected id %d, got %d", id, r.ID)
	}
	if r.Target != "repo-a" {
		t.Errorf("expected target repo-a, got %q", r.Target)
	}
	if r.Suite != "pre-merge" {
		t.Errorf("expected suite pre-merge, got %q", r.Suite)
	}
	if r.Linter != "ruff" {
		t.Errorf("expected linter ruff, got %q", r.Linter)
	}
	if r.Passed {
		t.Error("expected run to be recorded as failed")
	}
	if !r.AutoFixed {
		t.Error("expected auto_fixed to be true")
	}
	if r.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", r.ExitCode)
	}
	if r.DurationMs != 842 {
		t.Errorf("expected duration 842, got %d", r.DurationMs)
	}
	if r.ErrorCount != 3 || r.WarningCount != 1 {
		t.Errorf("expected counts 3/1, got %d/%d", r.ErrorCount, r.WarningCount)
	}
	if r.Summary != "3 errors, 1 warnings" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	if r.Findings != `[{"path":"a.py"}]` {
		t.Errorf("unexpected findings: %q", r.Findings)
	}
	if r.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestLogLintRunNullFields(t *testing.T) {
	d := testDB(t)

	if _, err := d.LogLintRun("repo-a", "", "ruff", true, false, 0, 50, 0, 0, "", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}

	runs, err := d.GetLintHistory("repo-a")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Suite != "" || runs[0].Summary != "" || runs[0].Findings != "" {
		t.Errorf("expected empty optional fields, got suite=%q summary=%q findings=%q",
			runs[0].Suite, runs[0].Summary, runs[0].Findings)
	}
}

func TestGetLintHistoryOrder(t *testing.T) {
	d := testDB(t)

	for _, linter := range []string{"ruff", "eslint", "typescript"} {
		if _, err := d.LogLintRun("repo-a", "", linter, true, false, 0, 100, 0, 0, "clean", ""); err != nil {
			t.Fatalf("log run: %v", err)
		}
	}

	runs, err := d.GetLintHistory("repo-a")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Linter != "typescript" || runs[2].Linter != "ruff" {
		t.Errorf("expected most recent run first, got %q, %q, %q",
			runs[0].Linter, runs[1].Linter, runs[2].Linter)
	}
}

func TestGetLintHistoryTargetIsolation(t *testing.T) {
	d := testDB(t)

	if _, err := d.LogLintRun("repo-a", "", "ruff", true, false, 0, 100, 0, 0, "clean", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	if _, err := d.LogLintRun("repo-b", "", "ruff", false, false, 1, 100, 2, 0, "2 errors, 0 warnings", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}

	runs, err := d.GetLintHistory("repo-a")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run for repo-a, got %d", len(runs))
	}
	if runs[0].Target != "repo-a" {
		t.Errorf("expected target repo-a, got %q", runs[0].Target)
	}
}

func TestGetLatestLintRun(t *testing.T) {
	d := testDB(t)

	if _, err := d.LogLintRun("repo-a", "", "ruff", false, false, 1, 100, 5, 0, "5 errors, 0 warnings", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	if _, err := d.LogLintRun("repo-a", "", "ruff", true, false, 0, 90, 0, 0, "clean", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}

	run, err := d.GetLatestLintRun("repo-a", "ruff")
	if err != nil {
		t.Fatalf("get latest run: %v", err)
	}
	if run == nil {
		t.Fatal("expected a run, got nil")
	}
	if !run.Passed {
		t.Error("expected latest run to be the passing one")
	}
	if run.Summary != "clean" {
		t.Errorf("expected summary clean, got %q", run.Summary)
	}
}

func TestGetLatestLintRunNotFound(t *testing.T) {
	d := testDB(t)

	run, err := d.GetLatestLintRun("repo-a", "ruff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run != nil {
		t.Errorf("expected nil for linter with no runs, got %+v", run)
	}
}

func TestGetLatestFailedRuns(t *testing.T) {
	d := testDB(t)

	// ruff failed once but its latest run passed
	if _, err := d.LogLintRun("repo-a", "", "ruff", false, false, 1, 100, 4, 0, "4 errors, 0 warnings", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	if _, err := d.LogLintRun("repo-a", "", "ruff", true, true, 0, 110, 0, 0, "clean", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	// eslint is still failing
	if _, err := d.LogLintRun("repo-a", "", "eslint", false, false, 1, 200, 2, 1, "2 errors, 1 warnings", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}
	// typescript has only ever passed
	if _, err := d.LogLintRun("repo-a", "", "typescript", true, false, 0, 300, 0, 0, "clean", ""); err != nil {
		t.Fatalf("log run: %v", err)
	}

	failed, err := d.GetLatestFailedRuns("repo-a")
	if err != nil {
		t.Fatalf("get failed runs: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed linter, got %d", len(failed))
	}
	if failed[0].Linter != "eslint" {
		t.Errorf("expected eslint, got %q", failed[0].Linter)
	}
	if failed[0].ErrorCount != 2 {
		t.Errorf("expected 2 errors, got %d", failed[0].ErrorCount)
	}
}

func TestGetLatestFailedRunsEmpty(t *testing.T) {
	d := testDB(t)

	failed, err := d.GetLatestFailedRuns("repo-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("expected no failed runs, got %d", len(failed))
	}
}

func TestLogRunEvent(t *testing.T) {
	d := testDB(t)

	if err := d.LogRunEvent("repo-a", "suite_started", "pre-merge", ""); err != nil {
		t.Fatalf("log event: %v", err)
	}
	if err := d.LogRunEvent("repo-a", "suite_failed", "pre-merge", "ruff: 3 errors"); err != nil {
		t.Fatalf("log event: %v", err)
	}

	events, err := d.GetRunEvents("repo-a")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Event != "suite_failed" {
		t.Errorf("expected most recent event first, got %q", events[0].Event)
	}
	if events[0].Detail != "ruff: 3 errors" {
		t.Errorf("unexpected detail: %q", events[0].Detail)
	}
	if events[1].Event != "suite_started" {
		t.Errorf("expected suite_started, got %q", events[1].Event)
	}
	if events[1].Detail != "" {
		t.Errorf("expected empty detail, got %q", events[1].Detail)
	}
}

func TestGetRunEventsEmpty(t *testing.T) {
	d := testDB(t)

	events, err := d.GetRunEvents("repo-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}
