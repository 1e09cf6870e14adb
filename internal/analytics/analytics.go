package analytics

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
)

// DB is the interface for database queries used by analytics.
type DB interface {
	Conn() *sql.DB
}

// LinterStats holds aggregate run stats for one linter.
type LinterStats struct {
	Linter         string  `json:"linter"`
	Runs           int     `json:"runs"`
	PassPct        float64 `json:"pass_pct"`
	FixedRuns      int     `json:"fixed_runs"`
	AvgMs          float64 `json:"avg_ms"`
	P50Ms          float64 `json:"p50_ms"`
	P95Ms          float64 `json:"p95_ms"`
	CommonFailures string  `json:"common_failures,omitempty"`
}

// QueryLinterStats returns per-linter pass rates and duration percentiles.
// Pass "" for target or since to skip that filter.
func QueryLinterStats(database DB, target, since string) ([]LinterStats, error) {
	query := `SELECT linter, passed, auto_fixed, duration_ms FROM lint_runs WHERE 1=1`
	args := []interface{}{}
	if target != "" {
		query += ` AND target = ?`
		args = append(args, target)
	}
	if since != "" {
		query += ` AND timestamp >= ?`
		args = append(args, since)
	}

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query linter stats: %w", err)
	}
	defer rows.Close()

	type linterAgg struct {
		runs, passed, fixed int
		durations           []float64
	}
	aggs := make(map[string]*linterAgg)
	for rows.Next() {
		var name string
		var passed, autoFixed bool
		var durationMs sql.NullInt64
		if err := rows.Scan(&name, &passed, &autoFixed, &durationMs); err != nil {
			return nil, fmt.Errorf("scan linter stats: %w", err)
		}
		agg, ok := aggs[name]
		if !ok {
			agg = &linterAgg{}
			aggs[name] = agg
		}
		agg.runs++
		if passed {
			agg.passed++
		}
		if autoFixed {
			agg.fixed++
		}
		if durationMs.Valid {
			agg.durations = append(agg.durations, float64(durationMs.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var results []LinterStats
	for name, agg := range aggs {
		sort.Float64s(agg.durations)
		results = append(results, LinterStats{
			Linter:    name,
			Runs:      agg.runs,
			PassPct:   pct(agg.passed, agg.runs),
			FixedRuns: agg.fixed,
			AvgMs:     avg(agg.durations),
			P50Ms:     percentile(agg.durations, 50),
			P95Ms:     percentile(agg.durations, 95),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Linter < results[j].Linter
	})

	// Attach the most common failure summaries per linter
	for i := range results {
		summaryQuery := `
			SELECT summary, COUNT(*) as cnt
			FROM lint_runs
			WHERE linter = ? AND passed = 0 AND summary != ''`
		sArgs := []interface{}{results[i].Linter}
		if target != "" {
			summaryQuery += ` AND target = ?`
			sArgs = append(sArgs, target)
		}
		if since != "" {
			summaryQuery += ` AND timestamp >= ?`
			sArgs = append(sArgs, since)
		}
		summaryQuery += ` GROUP BY summary ORDER BY cnt DESC LIMIT 2`

		sRows, err := database.Conn().Query(summaryQuery, sArgs...)
		if err != nil {
			continue
		}
		var summaries []string
		for sRows.Next() {
			var summary string
			var cnt int
			if err := sRows.Scan(&summary, &cnt); err != nil {
				break
			}
			if summary != "" {
				summaries = append(summaries, summary)
			}
		}
		_ = sRows.Err()
		sRows.Close()
		if len(summaries) > 0 {
			results[i].CommonFailures = summaries[0]
			if len(summaries) > 1 {
				results[i].CommonFailures += ", " + summaries[1]
			}
		}
	}

	return results, nil
}

// SuiteThroughput holds suite outcomes for a time period.
type SuiteThroughput struct {
	Period  string  `json:"period"`
	Started int     `json:"started"`
	Passed  int     `json:"passed"`
	Failed  int     `json:"failed"`
	PassPct float64 `json:"pass_pct"`
}

// QuerySuiteThroughput returns suite outcomes grouped by week.
func QuerySuiteThroughput(database DB, since string) ([]SuiteThroughput, error) {
	query := `
		SELECT
			strftime('%Y-W%W', timestamp) as period,
			SUM(CASE WHEN event = 'suite_started' THEN 1 ELSE 0 END) as started,
			SUM(CASE WHEN event = 'suite_passed' THEN 1 ELSE 0 END) as passed,
			SUM(CASE WHEN event = 'suite_failed' THEN 1 ELSE 0 END) as failed
		FROM run_events
		WHERE event IN ('suite_started', 'suite_passed', 'suite_failed')`

	args := []interface{}{}
	if since != "" {
		query += ` AND timestamp >= ?`
		args = append(args, since)
	}
	query += ` GROUP BY period ORDER BY period DESC LIMIT 10`

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query suite throughput: %w", err)
	}
	defer rows.Close()

	var results []SuiteThroughput
	for rows.Next() {
		var st SuiteThroughput
		if err := rows.Scan(&st.Period, &st.Started, &st.Passed, &st.Failed); err != nil {
			return nil, fmt.Errorf("scan suite throughput: %w", err)
		}
		st.PassPct = pct(st.Passed, st.Passed+st.Failed)
		results = append(results, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// TargetEvent holds a single entry in the target-detail timeline.
type TargetEvent struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Event     string `json:"event"`
	Suite     string `json:"suite,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// QueryTargetDetail returns the merged run and event timeline for a target.
func QueryTargetDetail(database DB, target string) ([]TargetEvent, error) {
	var results []TargetEvent

	// Individual linter runs
	runRows, err := database.Conn().Query(
		`SELECT timestamp, linter, suite, passed, auto_fixed, duration_ms, summary
		 FROM lint_runs WHERE target = ? ORDER BY timestamp, id`,
		target,
	)
	if err != nil {
		return nil, fmt.Errorf("query lint runs: %w", err)
	}
	defer runRows.Close()

	for runRows.Next() {
		var ts, name string
		var suite, summary sql.NullString
		var passed, autoFixed bool
		var durationMs sql.NullInt64
		if err := runRows.Scan(&ts, &name, &suite, &passed, &autoFixed, &durationMs, &summary); err != nil {
			return nil, fmt.Errorf("scan lint run: %w", err)
		}

		status := "PASS"
		if !passed {
			status = "FAIL"
		}
		if autoFixed {
			status += " (auto-fixed)"
		}

		detail := fmt.Sprintf("%s: %s (%dms)", name, status, durationMs.Int64)
		if summary.Valid && summary.String != "" {
			detail += ": " + summary.String
		}

		results = append(results, TargetEvent{
			Timestamp: ts,
			Type:      "run",
			Event:     name,
			Suite:     suite.String,
			Detail:    detail,
		})
	}
	if err := runRows.Err(); err != nil {
		return nil, err
	}

	// Suite lifecycle events
	evRows, err := database.Conn().Query(
		`SELECT timestamp, event, suite, detail
		 FROM run_events WHERE target = ? ORDER BY timestamp, id`,
		target,
	)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer evRows.Close()

	for evRows.Next() {
		var ts, event string
		var suite, detail sql.NullString
		if err := evRows.Scan(&ts, &event, &suite, &detail); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		results = append(results, TargetEvent{
			Timestamp: ts,
			Type:      "suite",
			Event:     event,
			Suite:     suite.String,
			Detail:    detail.String,
		})
	}
	if err := evRows.Err(); err != nil {
		return nil, err
	}

	// Sort all events by timestamp
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp < results[j].Timestamp
	})

	return results, nil
}

// --- helpers ---

func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return math.Round(sum/float64(len(values))*10) / 10
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper || upper >= len(sorted) {
		return math.Round(sorted[lower]*10) / 10
	}
	weight := rank - float64(lower)
	return math.Round((sorted[lower]*(1-weight)+sorted[upper]*weight)*10) / 10
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}
