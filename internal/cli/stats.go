package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasnoah/lintgate/internal/analytics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate stats over recorded lint runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		format, _ := cmd.Flags().GetString("format")

		since, err := sinceFlag(cmd)
		if err != nil {
			return err
		}

		target := ""
		if !all {
			target, err = resolveTarget(cmd)
			if err != nil {
				return err
			}
		}

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := analytics.QueryLinterStats(d, target, since)
		if err != nil {
			return fmt.Errorf("query linter stats: %w", err)
		}

		if format == "json" {
			return printJSON(cmd, stats)
		}

		if len(stats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lint runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-5s %-6s %-6s %-8s %-8s %-8s %s\n",
			"LINTER", "RUNS", "PASS%", "FIXED", "AVG", "P50", "P95", "COMMON FAILURES")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 90))
		for _, s := range stats {
			fmt.Fprintf(w, "%-12s %-5d %-6.1f %-6d %-8s %-8s %-8s %s\n",
				s.Linter, s.Runs, s.PassPct, s.FixedRuns,
				fmt.Sprintf("%.0fms", s.AvgMs),
				fmt.Sprintf("%.0fms", s.P50Ms),
				fmt.Sprintf("%.0fms", s.P95Ms),
				s.CommonFailures)
		}
		return nil
	},
}

var statsThroughputCmd = &cobra.Command{
	Use:   "throughput",
	Short: "Suite outcomes per week",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		since, err := sinceFlag(cmd)
		if err != nil {
			return err
		}

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := analytics.QuerySuiteThroughput(d, since)
		if err != nil {
			return fmt.Errorf("query suite throughput: %w", err)
		}

		if format == "json" {
			return printJSON(cmd, rows)
		}

		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No suite runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-10s %-8s %-8s %-8s %s\n",
			"PERIOD", "STARTED", "PASSED", "FAILED", "PASS%")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 50))
		for _, r := range rows {
			fmt.Fprintf(w, "%-10s %-8d %-8d %-8d %.1f\n",
				r.Period, r.Started, r.Passed, r.Failed, r.PassPct)
		}
		return nil
	},
}

var statsTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Merged run and event timeline for a target",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		events, err := analytics.QueryTargetDetail(d, target)
		if err != nil {
			return fmt.Errorf("query target detail: %w", err)
		}

		if format == "json" {
			return printJSON(cmd, events)
		}

		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events recorded for this target.")
			return nil
		}

		w := cmd.OutOrStdout()
		for _, e := range events {
			suite := e.Suite
			if suite == "" {
				suite = "-"
			}
			fmt.Fprintf(w, "%-20s %-6s %-14s %-10s %s\n",
				e.Timestamp, e.Type, e.Event, suite, e.Detail)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("all", false, "Aggregate over all targets, not just the current one")
	statsCmd.Flags().String("since", "", "Only include runs newer than this (e.g. 7d, 24h)")
	statsCmd.Flags().String("target", ".", "Target directory to aggregate over")
	statsCmd.Flags().String("format", "text", "Output format: text or json")

	statsThroughputCmd.Flags().String("since", "", "Only include suite runs newer than this (e.g. 7d, 24h)")
	statsThroughputCmd.Flags().String("format", "text", "Output format: text or json")

	statsTimelineCmd.Flags().String("target", ".", "Target directory to show the timeline for")
	statsTimelineCmd.Flags().String("format", "text", "Output format: text or json")

	statsCmd.AddCommand(statsThroughputCmd)
	statsCmd.AddCommand(statsTimelineCmd)
}

// sinceFlag converts the --since duration (e.g. "7d", "24h") into the
// SQLite datetime format run timestamps are stored in.
func sinceFlag(cmd *cobra.Command) (string, error) {
	s, _ := cmd.Flags().GetString("since")
	if s == "" {
		return "", nil
	}

	var d time.Duration
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return "", fmt.Errorf("invalid --since value %q", s)
		}
		d = time.Duration(days) * 24 * time.Hour
	} else {
		var err error
		d, err = time.ParseDuration(s)
		if err != nil {
			return "", fmt.Errorf("invalid --since value %q", s)
		}
	}

	return time.Now().UTC().Add(-d).Format("2006-01-02 15:04:05"), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
