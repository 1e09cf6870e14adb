package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lucasnoah/lintgate/internal/config"
	"github.com/lucasnoah/lintgate/internal/detect"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Suggest linters for a project based on its file types",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve dir %q: %w", dir, err)
		}

		genInit, _ := cmd.Flags().GetBool("init")
		format, _ := cmd.Flags().GetString("format")

		result, err := detect.Detect(abs)
		if err != nil {
			return fmt.Errorf("detect linters: %w", err)
		}

		w := cmd.OutOrStdout()

		if genInit {
			cfg := starterConfig(filepath.Base(abs), result.Linters)
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(w, string(data))
			return nil
		}

		if format == "json" {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
			return nil
		}

		if len(result.Linters) == 0 {
			fmt.Fprintln(w, "No lintable files found.")
			return nil
		}

		fmt.Fprintf(w, "Suggested linters: %s\n", strings.Join(result.Linters, ", "))
		if len(result.Reasons) > 0 {
			fmt.Fprintln(w, "Reasons:")
			for _, reason := range result.Reasons {
				fmt.Fprintf(w, "  - %s\n", reason)
			}
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().Bool("init", false, "Print a starter lintgate.yaml for the detected linters")
	detectCmd.Flags().String("format", "text", "Output format: text or json")
}

// starterConfig builds a minimal lint config for the detected linters.
func starterConfig(project string, linters []string) *config.LintConfig {
	cfg := &config.LintConfig{
		Lint: config.Lint{
			Project:        project,
			Root:           ".",
			DefaultLinters: linters,
			Linters:        make(map[string]config.Linter, len(linters)),
			Suites: []config.Suite{
				{ID: "default", Linters: linters, Verify: true},
			},
		},
	}
	for _, name := range linters {
		cfg.Lint.Linters[name] = config.Linter{
			Adapter:    name,
			Extensions: detect.LinterExtensions(name),
		}
	}
	return cfg
}
