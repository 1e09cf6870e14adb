package cli

import (
	"fmt"
	"strings"

	"github.com/lucasnoah/lintgate/internal/detect"
	"github.com/lucasnoah/lintgate/internal/linter"
	"github.com/spf13/cobra"
)

// adapterInfo is static display metadata for the builtin adapters.
type adapterInfo struct {
	Runtime string
	Fix     bool
}

var adapterInfos = map[string]adapterInfo{
	"ruff":       {Runtime: "python3", Fix: true},
	"eslint":     {Runtime: "node", Fix: true},
	"typescript": {Runtime: "node", Fix: false},
}

var lintersCmd = &cobra.Command{
	Use:   "linters",
	Short: "List available linter adapters",
	Long: `Linters lists every registered adapter with its runtime, covered
extensions, and fix support. AVAILABLE reflects a runtime probe only;
use "lintgate verify" for the full setup check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := linter.NewRunner(&linter.ExecRunner{}, &linter.PathProber{})
		probe := &linter.PathProber{}

		// Which adapters the current config actually uses. Config is
		// optional here; without one the column stays empty.
		configured := make(map[string]bool)
		if cfg, err := loadConfig(); err == nil {
			for _, lc := range cfg.Lint.Linters {
				configured[lc.Adapter] = true
			}
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-9s %-20s %-4s %-10s %s\n",
			"NAME", "RUNTIME", "EXTENSIONS", "FIX", "AVAILABLE", "CONFIGURED")
		for _, name := range runner.Names() {
			info := adapterInfos[name]
			exts := strings.Join(detect.LinterExtensions(name), ", ")
			fix := ""
			if info.Fix {
				fix = "yes"
			}
			available := ""
			if info.Runtime != "" && probe.Exists(info.Runtime) {
				available = "yes"
			}
			mark := ""
			if configured[name] {
				mark = "yes"
			}
			fmt.Fprintf(w, "%-12s %-9s %-20s %-4s %-10s %s\n",
				name, info.Runtime, exts, fix, available, mark)
		}
		return nil
	},
}
