package linter

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// RunResult holds the structured outcome of one linter run.
type RunResult struct {
	Linter     string  `json:"linter"`
	Success    bool    `json:"success"`
	AutoFixed  bool    `json:"auto_fixed"`
	Status     int     `json:"status"`
	DurationMs int     `json:"duration_ms"`
	Summary    string  `json:"summary"`
	Result     *Result `json:"result"`
	Stdout     string  `json:"stdout,omitempty"`
	Stderr     string  `json:"stderr,omitempty"`
}

// RunConfig mirrors config.Linter with the fields the runner needs.
// Linter is the label results are reported under; Adapter selects the
// engine and defaults to the label when empty.
type RunConfig struct {
	Linter     string
	Adapter    string
	Extensions []string
	ExtraArgs  string
	Fix        bool
	Prefix     string
	Timeout    time.Duration
}

func (cfg RunConfig) adapterName() string {
	if cfg.Adapter != "" {
		return cfg.Adapter
	}
	return cfg.Linter
}

// Runner resolves adapters and drives them through the lint/parse cycle.
type Runner struct {
	cmd      CommandRunner
	probe    Prober
	adapters map[string]Adapter
}

// NewRunner creates a Runner with the builtin adapters registered.
func NewRunner(cmd CommandRunner, probe Prober) *Runner {
	r := &Runner{
		cmd:      cmd,
		probe:    probe,
		adapters: make(map[string]Adapter),
	}
	r.Register(NewRuffAdapter(cmd, probe))
	r.Register(NewESLintAdapter(cmd, probe))
	r.Register(NewTypeScriptAdapter(cmd, probe))
	return r
}

// Register adds an adapter under its name, replacing any existing one.
func (r *Runner) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Adapter returns the named adapter.
func (r *Runner) Adapter(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown linter %q", name)
	}
	return a, nil
}

// Names returns all registered adapter names, sorted.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const defaultTimeout = 2 * time.Minute

// Run executes a single linter in the given directory.
func (r *Runner) Run(dir string, cfg RunConfig) (*RunResult, error) {
	adapter, err := r.Adapter(cfg.adapterName())
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	result, err := r.runOnce(adapter, dir, cfg, timeout)
	if err != nil {
		return nil, err
	}

	// Fix flow: if the report run failed and fix is enabled, run a fix
	// pass (its exit code is data, not a failure) and re-check.
	if !result.Success && cfg.Fix {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		fixOpts := lintOpts(cfg)
		fixOpts.Fix = true
		_, fixErr := adapter.Lint(ctx, dir, fixOpts)
		cancel()
		if fixErr != nil {
			return nil, fmt.Errorf("fix pass for %q: %w", cfg.Linter, fixErr)
		}

		recheck, err := r.runOnce(adapter, dir, cfg, timeout)
		if err != nil {
			return nil, fmt.Errorf("re-run after fix: %w", err)
		}
		recheck.AutoFixed = true
		return recheck, nil
	}

	return result, nil
}

// runOnce executes one report pass and parses the output.
func (r *Runner) runOnce(adapter Adapter, dir string, cfg RunConfig, timeout time.Duration) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	out, err := adapter.Lint(ctx, dir, lintOpts(cfg))
	durationMs := int(time.Since(start).Milliseconds())

	if err != nil {
		// Context deadline exceeded → timeout
		if ctx.Err() == context.DeadlineExceeded {
			return &RunResult{
				Linter:     cfg.Linter,
				Success:    false,
				Status:     -1,
				DurationMs: durationMs,
				Summary:    fmt.Sprintf("timeout after %s", timeout),
				Result:     NewResult(false),
			}, nil
		}
		return nil, fmt.Errorf("run linter %q: %w", cfg.Linter, err)
	}

	parsed := adapter.ParseOutput(dir, out)

	return &RunResult{
		Linter:     cfg.Linter,
		Success:    parsed.Success,
		Status:     out.Status,
		DurationMs: durationMs,
		Summary:    parsed.Summary(),
		Result:     parsed,
		Stdout:     out.Stdout,
		Stderr:     out.Stderr,
	}, nil
}

func lintOpts(cfg RunConfig) LintOpts {
	return LintOpts{
		Extensions: cfg.Extensions,
		ExtraArgs:  cfg.ExtraArgs,
		Prefix:     cfg.Prefix,
	}
}
