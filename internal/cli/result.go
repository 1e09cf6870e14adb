package cli

import (
	"fmt"

	"github.com/lucasnoah/lintgate/internal/artifact"
	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result [linter]",
	Short: "Show the latest result for a linter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		raw, _ := cmd.Flags().GetBool("raw")

		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		run, err := d.GetLatestLintRun(target, name)
		if err != nil {
			return fmt.Errorf("get lint result: %w", err)
		}
		if run == nil {
			return fmt.Errorf("no results found for linter %q on %s", name, target)
		}

		w := cmd.OutOrStdout()

		if raw {
			store, err := artifact.DefaultStore()
			if err != nil {
				return fmt.Errorf("open artifact store: %w", err)
			}
			stdout, err := store.LoadStdout(target, run.ID, run.Linter)
			if err != nil {
				return fmt.Errorf("load raw output: %w", err)
			}
			fmt.Fprint(w, stdout)
			return nil
		}

		fmt.Fprintf(w, "Linter:    %s\n", run.Linter)
		fmt.Fprintf(w, "Target:    %s\n", run.Target)
		if run.Suite != "" {
			fmt.Fprintf(w, "Suite:     %s\n", run.Suite)
		}
		passStr := "FAIL"
		if run.Passed {
			passStr = "PASS"
		}
		fmt.Fprintf(w, "Result:    %s\n", passStr)
		if run.AutoFixed {
			fmt.Fprintf(w, "Auto-Fix:  yes\n")
		}
		fmt.Fprintf(w, "Exit Code: %d\n", run.ExitCode)
		fmt.Fprintf(w, "Duration:  %dms\n", run.DurationMs)
		fmt.Fprintf(w, "Summary:   %s\n", run.Summary)
		if run.Findings != "" {
			fmt.Fprintf(w, "Findings:  %s\n", run.Findings)
		}
		fmt.Fprintf(w, "Timestamp: %s\n", run.Timestamp)

		return nil
	},
}

func init() {
	resultCmd.Flags().Bool("raw", false, "Print the stored raw linter output instead")
	resultCmd.Flags().String("target", ".", "Target directory the run was recorded for")
}
