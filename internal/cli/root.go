package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "lintgate",
	Short: "lintgate — gated lint runs for multi-language repos",
	Long: `lintgate runs configured linters against a project tree, normalises their
output into one findings format, and records every run.

Configuration lives in lintgate.yaml (or ~/.lintgate/config.yaml). Run
history is stored in ~/.lintgate/ (SQLite for runs, JSON and raw output
for artifacts).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to lint config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(suiteCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(lintersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
}
