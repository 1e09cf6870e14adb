package linter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	tscTool    = "tsc"
	tscRuntime = "node"
)

// TypeScriptAdapter wraps the TypeScript compiler in check-only mode.
type TypeScriptAdapter struct {
	cmd   CommandRunner
	probe Prober
}

// NewTypeScriptAdapter creates the adapter with its execution collaborators.
func NewTypeScriptAdapter(cmd CommandRunner, probe Prober) *TypeScriptAdapter {
	return &TypeScriptAdapter{cmd: cmd, probe: probe}
}

func (a *TypeScriptAdapter) Name() string { return "typescript" }

// VerifySetup probes for the Node runtime, then asks tsc for its version
// through the command prefix.
func (a *TypeScriptAdapter) VerifySetup(ctx context.Context, dir string, prefix string) error {
	if !a.probe.Exists(tscRuntime) {
		return &DependencyMissingError{Adapter: a.Name(), Dependency: tscRuntime}
	}
	command := joinCommand(prefix, tscTool, "--version")
	if _, err := a.cmd.Run(ctx, dir, command, RunOpts{}); err != nil {
		return &NotInstalledError{Adapter: a.Name(), Err: err}
	}
	return nil
}

// Lint type-checks the project in dir. The target set comes from
// tsconfig, so the extension set must be exactly ["ts"], and tsc has no
// fix mode.
func (a *TypeScriptAdapter) Lint(ctx context.Context, dir string, opts LintOpts) (*Output, error) {
	if len(opts.Extensions) != 1 || opts.Extensions[0] != "ts" {
		return nil, &ConfigurationError{
			Adapter: a.Name(),
			Reason:  fmt.Sprintf("extensions are not configurable, got %v", opts.Extensions),
		}
	}
	if opts.Fix {
		return nil, &ConfigurationError{Adapter: a.Name(), Reason: "fix mode is not supported"}
	}

	command := joinCommand(opts.Prefix, tscTool, "--noEmit --pretty false", opts.ExtraArgs)
	return a.cmd.Run(ctx, dir, command, RunOpts{IgnoreErrors: true})
}

// tsc output format: src/auth.ts(42,5): error TS2345: Argument of type...
var tscLineRe = regexp.MustCompile(`^(.+)\((\d+),(\d+)\):\s+error\s+(TS\d+):\s+(.+)$`)

// ParseOutput extracts compiler errors from tsc's line output.
func (a *TypeScriptAdapter) ParseOutput(dir string, out *Output) *Result {
	result := NewResult(out.Status == 0)

	for _, line := range strings.Split(out.Stdout, "\n") {
		line = strings.TrimSpace(line)
		m := tscLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		result.Errors = append(result.Errors, Finding{
			Path:      m[1],
			FirstLine: lineNum,
			LastLine:  lineNum,
			Message:   formatMessage(m[5], m[4]),
		})
	}

	return result
}
