package cli

import (
	"fmt"
	"strings"

	"github.com/lucasnoah/lintgate/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint runs for a target",
	RunE: func(cmd *cobra.Command, args []string) error {
		linterFilter, _ := cmd.Flags().GetString("linter")
		suiteFilter, _ := cmd.Flags().GetString("suite")
		failing, _ := cmd.Flags().GetBool("failing")

		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		var runs []db.LintRun
		if failing {
			runs, err = d.GetLatestFailedRuns(target)
		} else {
			runs, err = d.GetLintHistory(target)
		}
		if err != nil {
			return fmt.Errorf("get lint history: %w", err)
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lint runs found.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-6s %-12s %-10s %-6s %-4s %-8s %s\n",
			"ID", "LINTER", "SUITE", "RESULT", "FIX", "DURATION", "SUMMARY")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 80))

		for _, r := range runs {
			if linterFilter != "" && r.Linter != linterFilter {
				continue
			}
			if suiteFilter != "" && r.Suite != suiteFilter {
				continue
			}
			result := "FAIL"
			if r.Passed {
				result = "PASS"
			}
			fix := ""
			if r.AutoFixed {
				fix = "yes"
			}
			fmt.Fprintf(w, "%-6d %-12s %-10s %-6s %-4s %-8s %s\n",
				r.ID, r.Linter, r.Suite, result, fix,
				fmt.Sprintf("%dms", r.DurationMs), r.Summary)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().String("linter", "", "Filter by linter name")
	historyCmd.Flags().String("suite", "", "Filter by suite ID")
	historyCmd.Flags().Bool("failing", false, "Show only the latest failing run per linter")
	historyCmd.Flags().String("target", ".", "Target directory the runs were recorded for")
}
