package cli

import (
	"fmt"

	"github.com/lucasnoah/lintgate/internal/linter"
	"github.com/lucasnoah/lintgate/internal/progress"
	"github.com/spf13/cobra"
)

var suiteCmd = &cobra.Command{
	Use:   "suite [suite-id]",
	Short: "Run a configured lint suite as a pass/fail gate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suiteID := args[0]
		fix, _ := cmd.Flags().GetBool("fix")
		cont, _ := cmd.Flags().GetBool("continue")
		quiet, _ := cmd.Flags().GetBool("quiet")
		format, _ := cmd.Flags().GetString("format")

		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		d, store, cfg, cleanup, err := openRunDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		suiteCfg, ok := cfg.Lint.FindSuite(suiteID)
		if !ok {
			return fmt.Errorf("suite %q not defined in lint config", suiteID)
		}
		if len(suiteCfg.Linters) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No linters configured for this suite.")
			return nil
		}

		var configs []linter.RunConfig
		for _, name := range suiteCfg.Linters {
			rc, err := runConfigFor(cfg, name, fix)
			if err != nil {
				return err
			}
			configs = append(configs, rc)
		}

		tracker := progress.NewSuiteTracker(suiteID, len(configs))
		if quiet || format == "json" {
			tracker.Disable()
		}

		_ = d.LogRunEvent(target, "suite_started", suiteID, "")

		runner := linter.NewRunner(&linter.ExecRunner{}, &linter.PathProber{})
		suite, results, err := runner.RunSuite(target, linter.SuiteOpts{
			Suite:    suiteID,
			Target:   target,
			Configs:  configs,
			Continue: cont || suiteCfg.ContinueOnFailure,
			Verify:   suiteCfg.Verify,
			Progress: tracker,
		})
		tracker.Finish()
		if err != nil {
			return fmt.Errorf("run suite: %w", err)
		}

		for i, result := range results {
			if err := logRun(d, store, target, suiteID, result); err != nil {
				return fmt.Errorf("log run %d: %w", i, err)
			}
		}
		for _, lr := range suite.Linters {
			if lr.Skipped {
				_ = d.LogRunEvent(target, "verify_failed", suiteID, fmt.Sprintf("%s: %s", lr.Linter, lr.Reason))
			}
		}

		event := "suite_passed"
		detail := ""
		if !suite.Passed {
			event = "suite_failed"
			detail = fmt.Sprintf("%d linters failing", len(suite.RemainingFailures))
		}
		_ = d.LogRunEvent(target, event, suiteID, detail)

		if format == "json" {
			jsonStr, err := suite.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
		} else {
			w := cmd.OutOrStdout()
			for _, lr := range suite.Linters {
				if lr.Skipped {
					fmt.Fprintf(w, "[SKIP] %s — %s\n", lr.Linter, lr.Reason)
					continue
				}
				icon := "PASS"
				if !lr.Passed {
					icon = "FAIL"
				}
				extra := ""
				if lr.AutoFixed {
					extra = " (auto-fixed)"
				}
				fmt.Fprintf(w, "[%s] %s — %s%s\n", icon, lr.Linter, lr.Summary, extra)
			}
			if suite.Passed {
				fmt.Fprintln(w, "\nSuite PASSED")
			} else {
				fmt.Fprintln(w, "\nSuite FAILED")
			}
		}

		if !suite.Passed {
			cmd.SilenceUsage = true
			return fmt.Errorf("suite failed: %d linters failing", len(suite.RemainingFailures))
		}

		return nil
	},
}

func init() {
	suiteCmd.Flags().Bool("fix", false, "Run auto-fix before re-checking")
	suiteCmd.Flags().Bool("continue", false, "Run all linters even if some fail")
	suiteCmd.Flags().Bool("quiet", false, "Suppress the progress bar")
	suiteCmd.Flags().String("target", ".", "Directory to lint")
	suiteCmd.Flags().String("format", "text", "Output format: text or json")
}
