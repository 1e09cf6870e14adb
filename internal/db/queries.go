package db

import (
	"database/sql"
	"fmt"
)

// LintRun is a row in the lint_runs table.
type LintRun struct {
	ID           int64
	Target       string
	Suite        string
	Linter       string
	Passed       bool
	AutoFixed    bool
	ExitCode     int
	DurationMs   int64
	ErrorCount   int
	WarningCount int
	Summary      string
	Findings     string
	Timestamp    string
}

// LogLintRun records a single linter run and returns its row id.
func (d *DB) LogLintRun(target, suite, linter string, passed, autoFixed bool, exitCode int, durationMs int64, errorCount, warningCount int, summary, findings string) (int64, error) {
	res, err := d.conn.Exec(`
		INSERT INTO lint_runs (target, suite, linter, passed, auto_fixed, exit_code, duration_ms, error_count, warning_count, summary, findings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		target, nullString(suite), linter, passed, autoFixed, exitCode, durationMs, errorCount, warningCount, nullString(summary), nullString(findings))
	if err != nil {
		return 0, fmt.Errorf("log lint run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get lint run id: %w", err)
	}
	return id, nil
}

// GetLintHistory returns all runs for a target, most recent first.
func (d *DB) GetLintHistory(target string) ([]LintRun, error) {
	rows, err := d.conn.Query(`
		SELECT id, target, suite, linter, passed, auto_fixed, exit_code, duration_ms, error_count, warning_count, summary, findings, timestamp
		FROM lint_runs WHERE target = ? ORDER BY id DESC`, target)
	if err != nil {
		return nil, fmt.Errorf("query lint history: %w", err)
	}
	defer rows.Close()
	return scanLintRuns(rows)
}

// GetLatestLintRun returns the most recent run of one linter against a target,
// or nil if the linter has never run.
func (d *DB) GetLatestLintRun(target, linter string) (*LintRun, error) {
	row := d.conn.QueryRow(`
		SELECT id, target, suite, linter, passed, auto_fixed, exit_code, duration_ms, error_count, warning_count, summary, findings, timestamp
		FROM lint_runs WHERE target = ? AND linter = ? ORDER BY id DESC LIMIT 1`, target, linter)

	run, err := scanLintRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest lint run: %w", err)
	}
	return run, nil
}

// GetLatestFailedRuns returns, for each linter that has run against the target,
// its most recent run, filtered to those still failing.
func (d *DB) GetLatestFailedRuns(target string) ([]LintRun, error) {
	rows, err := d.conn.Query(`
		SELECT r.id, r.target, r.suite, r.linter, r.passed, r.auto_fixed, r.exit_code, r.duration_ms, r.error_count, r.warning_count, r.summary, r.findings, r.timestamp
		FROM lint_runs r
		INNER JOIN (
			SELECT linter, MAX(id) AS max_id
			FROM lint_runs WHERE target = ?
			GROUP BY linter
		) latest ON r.id = latest.max_id
		WHERE r.passed = 0
		ORDER BY r.linter`, target)
	if err != nil {
		return nil, fmt.Errorf("query latest failed runs: %w", err)
	}
	defer rows.Close()
	return scanLintRuns(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLintRun(row rowScanner) (*LintRun, error) {
	var r LintRun
	var suite, summary, findings sql.NullString
	var exitCode, durationMs sql.NullInt64
	err := row.Scan(&r.ID, &r.Target, &suite, &r.Linter, &r.Passed, &r.AutoFixed, &exitCode, &durationMs, &r.ErrorCount, &r.WarningCount, &summary, &findings, &r.Timestamp)
	if err != nil {
		return nil, err
	}
	r.Suite = suite.String
	r.Summary = summary.String
	r.Findings = findings.String
	r.ExitCode = int(exitCode.Int64)
	r.DurationMs = durationMs.Int64
	return &r, nil
}

func scanLintRuns(rows *sql.Rows) ([]LintRun, error) {
	var runs []LintRun
	for rows.Next() {
		r, err := scanLintRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lint run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// RunEvent is a row in the run_events table.
type RunEvent struct {
	ID        int64
	Target    string
	Event     string
	Suite     string
	Detail    string
	Timestamp string
}

// LogRunEvent records a suite-level lifecycle event.
func (d *DB) LogRunEvent(target, event, suite, detail string) error {
	_, err := d.conn.Exec(`
		INSERT INTO run_events (target, event, suite, detail)
		VALUES (?, ?, ?, ?)`,
		target, event, nullString(suite), nullString(detail))
	if err != nil {
		return fmt.Errorf("log run event: %w", err)
	}
	return nil
}

// GetRunEvents returns all events for a target, most recent first.
func (d *DB) GetRunEvents(target string) ([]RunEvent, error) {
	rows, err := d.conn.Query(`
		SELECT id, target, event, suite, detail, timestamp
		FROM run_events WHERE target = ? ORDER BY id DESC`, target)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var events []RunEvent
	for rows.Next() {
		var e RunEvent
		var suite, detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Target, &e.Event, &suite, &detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		e.Suite = suite.String
		e.Detail = detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
