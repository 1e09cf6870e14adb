package cli

import (
	"fmt"
	"sort"

	"github.com/lucasnoah/lintgate/internal/linter"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [linter...]",
	Short: "Check that linters and their runtimes are installed",
	Long: `Verify probes each linter's runtime and invokes the tool itself
(e.g. "ruff --version") without linting anything. With no arguments all
configured linters are verified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		names := args
		if len(names) == 0 {
			for name := range cfg.Lint.Linters {
				names = append(names, name)
			}
			sort.Strings(names)
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No linters configured.")
			return nil
		}

		runner := linter.NewRunner(&linter.ExecRunner{}, &linter.PathProber{})
		w := cmd.OutOrStdout()
		failed := 0

		for _, name := range names {
			lc, ok := cfg.Lint.Linters[name]
			if !ok {
				return fmt.Errorf("linter %q not defined in lint config", name)
			}

			rc := linter.RunConfig{Linter: name, Adapter: lc.Adapter, Prefix: lc.CommandPrefix}
			if err := verifyLinter(runner, target, rc); err != nil {
				failed++
				fmt.Fprintf(w, "[MISSING] %s — %s\n", name, err)
			} else {
				fmt.Fprintf(w, "[OK] %s\n", name)
			}
		}

		if failed > 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d linter(s) not ready", failed)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("target", ".", "Directory the linters would run in")
}
