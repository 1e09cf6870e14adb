package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lucasnoah/lintgate/internal/linter"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [linter]",
	Short: "Parse raw linter output into the canonical findings format",
	Long: `Parse reads raw linter output from stdin (or --file) and prints the
normalised result as JSON. Useful for debugging adapters against captured
output without re-running the tool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetInt("status")
		file, _ := cmd.Flags().GetString("file")
		dir, _ := cmd.Flags().GetString("dir")

		runner := linter.NewRunner(&linter.ExecRunner{}, &linter.PathProber{})
		adapter, err := runner.Adapter(args[0])
		if err != nil {
			return err
		}

		var raw []byte
		if file != "" {
			raw, err = os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		result := adapter.ParseOutput(dir, &linter.Output{
			Status: status,
			Stdout: string(raw),
		})

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	parseCmd.Flags().Int("status", 0, "Exit status the linter reported")
	parseCmd.Flags().String("file", "", "Read output from a file instead of stdin")
	parseCmd.Flags().String("dir", ".", "Directory the linter ran in")
}
