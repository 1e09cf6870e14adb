package linter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	eslintTool    = "eslint"
	eslintRuntime = "node"
)

var eslintExtensions = map[string]bool{
	"js":  true,
	"jsx": true,
	"ts":  true,
	"tsx": true,
}

// ESLintAdapter wraps ESLint for JavaScript and TypeScript sources.
type ESLintAdapter struct {
	cmd   CommandRunner
	probe Prober
}

// NewESLintAdapter creates the adapter with its execution collaborators.
func NewESLintAdapter(cmd CommandRunner, probe Prober) *ESLintAdapter {
	return &ESLintAdapter{cmd: cmd, probe: probe}
}

func (a *ESLintAdapter) Name() string { return "eslint" }

// VerifySetup probes for the Node runtime, then asks eslint for its
// version through the command prefix.
func (a *ESLintAdapter) VerifySetup(ctx context.Context, dir string, prefix string) error {
	if !a.probe.Exists(eslintRuntime) {
		return &DependencyMissingError{Adapter: a.Name(), Dependency: eslintRuntime}
	}
	command := joinCommand(prefix, eslintTool, "--version")
	if _, err := a.cmd.Run(ctx, dir, command, RunOpts{}); err != nil {
		return &NotInstalledError{Adapter: a.Name(), Err: err}
	}
	return nil
}

// Lint runs eslint over dir with JSON output. Any non-empty subset of
// js/jsx/ts/tsx is accepted and passed as --ext.
func (a *ESLintAdapter) Lint(ctx context.Context, dir string, opts LintOpts) (*Output, error) {
	if len(opts.Extensions) == 0 {
		return nil, &ConfigurationError{Adapter: a.Name(), Reason: "at least one extension is required"}
	}
	exts := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if !eslintExtensions[ext] {
			return nil, &ConfigurationError{
				Adapter: a.Name(),
				Reason:  fmt.Sprintf("unsupported extension %q", ext),
			}
		}
		exts = append(exts, "."+ext)
	}

	fixArg := ""
	if opts.Fix {
		fixArg = "--fix"
	}
	command := joinCommand(opts.Prefix, eslintTool, "--format json", "--ext "+strings.Join(exts, ","), fixArg, opts.ExtraArgs, ".")
	return a.cmd.Run(ctx, dir, command, RunOpts{IgnoreErrors: true})
}

type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"` // 1=warning, 2=error
	Message  string `json:"message"`
	Line     int    `json:"line"`
	EndLine  int    `json:"endLine"`
}

// ParseOutput decodes ESLint's JSON report. ESLint emits absolute file
// paths, so they are made relative to dir. Severity 2 lands in the error
// bucket, everything else in warnings.
func (a *ESLintAdapter) ParseOutput(dir string, out *Output) *Result {
	result := NewResult(out.Status == 0)

	var files []eslintFile
	if err := json.Unmarshal([]byte(out.Stdout), &files); err != nil {
		return result
	}

	for _, f := range files {
		path := relPath(dir, f.FilePath)
		for _, m := range f.Messages {
			lastLine := m.EndLine
			if lastLine < m.Line {
				lastLine = m.Line
			}
			finding := Finding{
				Path:      path,
				FirstLine: m.Line,
				LastLine:  lastLine,
				Message:   formatMessage(m.Message, m.RuleID),
			}
			if m.Severity == 2 {
				result.Errors = append(result.Errors, finding)
			} else {
				result.Warnings = append(result.Warnings, finding)
			}
		}
	}

	return result
}

// relPath makes an absolute tool path relative to the lint directory.
func relPath(dir, path string) string {
	if dir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
