package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/lucasnoah/lintgate/internal/artifact"
	"github.com/lucasnoah/lintgate/internal/config"
	"github.com/lucasnoah/lintgate/internal/db"
	"github.com/lucasnoah/lintgate/internal/linter"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [linter...]",
	Short: "Run one or more configured linters against a target",
	Long: `Run executes the named linters against the target directory, records
each result, and prints a pass/fail line per linter. Without arguments
the config's default_linters run.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")
		cont, _ := cmd.Flags().GetBool("continue")
		verify, _ := cmd.Flags().GetBool("verify")
		prefix, _ := cmd.Flags().GetString("prefix")
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

		names := args
		if len(names) == 0 {
			names = cfg.Lint.DefaultLinters
		}
		if len(names) == 0 {
			return fmt.Errorf("no linters named and no default_linters configured")
		}

		runner := linter.NewRunner(&linter.ExecRunner{}, &linter.PathProber{})
		var results []*linter.RunResult
		var firstErr error

		for _, name := range names {
			rc, err := runConfigFor(cfg, name, fix)
			if err != nil {
				return err
			}
			if prefix != "" {
				rc.Prefix = prefix
			}

			if verify {
				if err := verifyLinter(runner, target, rc); err != nil {
					cmd.SilenceUsage = true
					return fmt.Errorf("linter %q not ready: %w", name, err)
				}
			}

			result, err := runner.Run(target, rc)
			if err != nil {
				return fmt.Errorf("run linter %q: %w", name, err)
			}
			results = append(results, result)

			if err := logRun(d, store, target, "", result); err != nil {
				return err
			}

			if format != "json" {
				printRunLine(cmd.OutOrStdout(), result)
			}

			if !result.Success && !cont {
				if firstErr == nil {
					firstErr = fmt.Errorf("linter %q failed", name)
				}
				break
			}
		}

		if format == "json" {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		if firstErr != nil {
			cmd.SilenceUsage = true
			return firstErr
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("fix", false, "Run auto-fix before re-checking")
	runCmd.Flags().Bool("continue", false, "Continue running linters after failures")
	runCmd.Flags().Bool("verify", false, "Verify each linter's setup before running it")
	runCmd.Flags().String("prefix", "", "Command prefix overriding the configured one")
	runCmd.Flags().String("target", ".", "Directory to lint")
	runCmd.Flags().String("format", "text", "Output format: text or json")
}

// verifyLinter runs one linter's setup verification with a bounded timeout.
func verifyLinter(runner *linter.Runner, target string, rc linter.RunConfig) error {
	adapterName := rc.Adapter
	if adapterName == "" {
		adapterName = rc.Linter
	}
	adapter, err := runner.Adapter(adapterName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return adapter.VerifySetup(ctx, target, rc.Prefix)
}

// resolveTarget returns the absolute lint target directory from --target.
func resolveTarget(cmd *cobra.Command) (string, error) {
	target, _ := cmd.Flags().GetString("target")
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve target %q: %w", target, err)
	}
	return abs, nil
}

// openDB opens and migrates the DB, returning it with a cleanup func.
func openDB() (*db.DB, func(), error) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}

// openRunDeps opens DB, artifact store, and lint config for run operations.
func openRunDeps() (*db.DB, *artifact.Store, *config.LintConfig, func(), error) {
	d, cleanupDB, err := openDB()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := artifact.DefaultStore()
	if err != nil {
		cleanupDB()
		return nil, nil, nil, nil, fmt.Errorf("open artifact store: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		cleanupDB()
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	return d, store, cfg, cleanupDB, nil
}

// runConfigFor builds a runner config for one configured linter.
func runConfigFor(cfg *config.LintConfig, name string, fix bool) (linter.RunConfig, error) {
	lc, ok := cfg.Lint.Linters[name]
	if !ok {
		return linter.RunConfig{}, fmt.Errorf("linter %q not defined in lint config", name)
	}
	return linter.RunConfig{
		Linter:     name,
		Adapter:    lc.Adapter,
		Extensions: lc.Extensions,
		ExtraArgs:  lc.ExtraArgs,
		Fix:        fix && lc.Fix,
		Prefix:     lc.CommandPrefix,
		Timeout:    parseDuration(lc.Timeout, 2*time.Minute),
	}, nil
}

// parseDuration parses a duration string, falling back to a default.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// logRun records a completed linter run in the DB and saves its raw
// output to the artifact store.
func logRun(d *db.DB, store *artifact.Store, target, suite string, result *linter.RunResult) error {
	id, err := d.LogLintRun(
		target, suite, result.Linter, result.Success, result.AutoFixed,
		result.Status, int64(result.DurationMs),
		len(result.Result.Errors), len(result.Result.Warnings),
		result.Summary, findingsJSON(result),
	)
	if err != nil {
		return fmt.Errorf("log lint run: %w", err)
	}
	_ = store.SaveRun(target, id, result)
	return nil
}

// findingsJSON renders a run's findings as compact JSON for DB storage.
func findingsJSON(result *linter.RunResult) string {
	if result.Result.Total() == 0 {
		return ""
	}
	data, err := json.Marshal(result.Result)
	if err != nil {
		return ""
	}
	return string(data)
}

func printRunLine(w io.Writer, result *linter.RunResult) {
	icon := "PASS"
	if !result.Success {
		icon = "FAIL"
	}
	extra := ""
	if result.AutoFixed {
		extra = " (auto-fixed)"
	}
	fmt.Fprintf(w, "[%s] %s — %s%s (%dms)\n", icon, result.Linter, result.Summary, extra, result.DurationMs)
}
