package linter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ruffTool    = "ruff"
	ruffRuntime = "python3"
)

// RuffAdapter wraps the ruff Python linter.
type RuffAdapter struct {
	cmd   CommandRunner
	probe Prober
}

// NewRuffAdapter creates the adapter with its execution collaborators.
func NewRuffAdapter(cmd CommandRunner, probe Prober) *RuffAdapter {
	return &RuffAdapter{cmd: cmd, probe: probe}
}

func (a *RuffAdapter) Name() string { return "ruff" }

// VerifySetup probes for the Python runtime, then asks ruff for its
// version through the command prefix.
func (a *RuffAdapter) VerifySetup(ctx context.Context, dir string, prefix string) error {
	if !a.probe.Exists(ruffRuntime) {
		return &DependencyMissingError{Adapter: a.Name(), Dependency: ruffRuntime}
	}
	command := joinCommand(prefix, ruffTool, "--version")
	if _, err := a.cmd.Run(ctx, dir, command, RunOpts{}); err != nil {
		return &NotInstalledError{Adapter: a.Name(), Err: err}
	}
	return nil
}

// Lint runs "ruff check" over dir. Ruff selects target files itself, so
// any extension set other than exactly ["py"] is rejected before a
// process spawns.
func (a *RuffAdapter) Lint(ctx context.Context, dir string, opts LintOpts) (*Output, error) {
	if len(opts.Extensions) != 1 || opts.Extensions[0] != "py" {
		return nil, &ConfigurationError{
			Adapter: a.Name(),
			Reason:  fmt.Sprintf("extensions are not configurable, got %v", opts.Extensions),
		}
	}

	fixArgs := ""
	if opts.Fix {
		fixArgs = "--fix-only --exit-non-zero-on-fix"
	}
	command := joinCommand(opts.Prefix, ruffTool, "check", "--quiet", fixArgs, opts.ExtraArgs, ".")
	return a.cmd.Run(ctx, dir, command, RunOpts{IgnoreErrors: true})
}

// ruff output format: src/app.py:10:5: E501 line too long (88 > 79 characters)
var ruffLineRe = regexp.MustCompile(`^(.+):(\d+):(\d+): ([A-Z][A-Z0-9]*\d) (.+)$`)

// ParseOutput extracts findings from ruff's plain-text report. Lines that
// do not match the finding format (fix summaries, "Found N errors"
// trailers) are skipped. Ruff reports everything at error severity.
func (a *RuffAdapter) ParseOutput(dir string, out *Output) *Result {
	result := NewResult(out.Status == 0)

	for _, line := range strings.Split(out.Stdout, "\n") {
		line = strings.TrimSpace(line)
		m := ruffLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		// m[3] is the column; the canonical result does not carry columns.
		result.Errors = append(result.Errors, Finding{
			Path:      trimDotSlash(m[1]),
			FirstLine: lineNum,
			LastLine:  lineNum,
			Message:   formatMessage(m[5], m[4]),
		})
	}

	return result
}

// trimDotSlash strips one literal "./" (or ".\") prefix. Paths without
// the prefix pass through untouched.
func trimDotSlash(path string) string {
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, `.\`) {
		return path[2:]
	}
	return path
}
