package linter

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LintOpts carries the caller's request for a lint run.
type LintOpts struct {
	// Extensions is the set of file extensions the caller wants linted,
	// without leading dots. Adapters reject sets their tool cannot honor.
	Extensions []string
	// ExtraArgs is appended verbatim to the tool command line.
	ExtraArgs string
	// Fix asks the tool to apply automatic fixes instead of reporting.
	Fix bool
	// Prefix is prepended to the tool invocation, e.g. "poetry run".
	Prefix string
}

// Adapter is the contract every wrapped linter implements. VerifySetup
// and Lint spawn processes through the injected CommandRunner;
// ParseOutput is pure.
type Adapter interface {
	// Name is the registry key, e.g. "ruff".
	Name() string
	// VerifySetup checks that the tool's runtime and the tool itself are
	// usable in dir. Failures are *DependencyMissingError or
	// *NotInstalledError.
	VerifySetup(ctx context.Context, dir string, prefix string) error
	// Lint runs the tool over dir. A non-zero tool exit is data in
	// Output.Status, never an error; an error means the request was
	// invalid (*ConfigurationError) or the process could not run at all.
	Lint(ctx context.Context, dir string, opts LintOpts) (*Output, error)
	// ParseOutput converts a raw Output into the canonical Result. It
	// never fails: unrecognized output degrades to fewer findings.
	ParseOutput(dir string, out *Output) *Result
}

// joinCommand assembles a shell command from optional parts, skipping
// blanks.
func joinCommand(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// formatMessage normalizes a tool message: first letter capitalized, rule
// code appended in parentheses. An empty code leaves the message bare.
func formatMessage(msg, code string) string {
	msg = capitalize(msg)
	if code == "" {
		return msg
	}
	return msg + " (" + code + ")"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
