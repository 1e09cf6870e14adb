package linter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// mockCmd records calls and returns configured results.
type mockCmd struct {
	calls   []mockCall
	results []mockResult
	callIdx int
}

type mockCall struct {
	Dir     string
	Command string
	Opts    RunOpts
}

type mockResult struct {
	Out *Output
	Err error
}

func (m *mockCmd) Run(ctx context.Context, dir string, command string, opts RunOpts) (*Output, error) {
	m.calls = append(m.calls, mockCall{Dir: dir, Command: command, Opts: opts})
	if m.callIdx >= len(m.results) {
		return &Output{}, nil
	}
	r := m.results[m.callIdx]
	m.callIdx++
	out := r.Out
	if out == nil {
		out = &Output{}
	}
	return out, r.Err
}

// mockProbe reports every program as present unless listed in missing.
type mockProbe struct {
	missing map[string]bool
}

func (m *mockProbe) Exists(program string) bool {
	return !m.missing[program]
}

func pyConfig() RunConfig {
	return RunConfig{
		Linter:     "ruff",
		Extensions: []string{"py"},
		Timeout:    30 * time.Second,
	}
}

func TestRunner_Run_HappyPath(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 0, Stdout: "Found 0 errors.\n"}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	result, err := runner.Run("/tmp/test", pyConfig())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success=true, got false")
	}
	if result.Linter != "ruff" {
		t.Errorf("expected linter=ruff, got %q", result.Linter)
	}
	if result.Status != 0 {
		t.Errorf("expected status=0, got %d", result.Status)
	}
	if result.Summary != "clean" {
		t.Errorf("expected summary=clean, got %q", result.Summary)
	}
	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.calls))
	}
	if mock.calls[0].Dir != "/tmp/test" {
		t.Errorf("expected dir=/tmp/test, got %q", mock.calls[0].Dir)
	}
	if mock.calls[0].Command != "ruff check --quiet ." {
		t.Errorf("unexpected command %q", mock.calls[0].Command)
	}
	if !mock.calls[0].Opts.IgnoreErrors {
		t.Error("expected lint run to ignore exit errors")
	}
}

func TestRunner_Run_FailedLint(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 1, Stdout: "src/app.py:10:5: E501 line too long (88 > 79 characters)\n"}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	result, err := runner.Run("/tmp/test", pyConfig())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("expected success=false, got true")
	}
	if result.Status != 1 {
		t.Errorf("expected status=1, got %d", result.Status)
	}
	if len(result.Result.Errors) != 1 {
		t.Fatalf("expected 1 error finding, got %d", len(result.Result.Errors))
	}
}

func TestRunner_Run_AutoFix(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 1, Stdout: "src/app.py:1:1: F401 'os' imported but unused\n"}}, // report
			{Out: &Output{Status: 1}}, // fix pass, non-zero exit means fixes applied
			{Out: &Output{Status: 0, Stdout: "Found 0 errors.\n"}}, // re-check
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	cfg := pyConfig()
	cfg.Fix = true

	result, err := runner.Run("/tmp/test", cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success=true after fix, got false")
	}
	if !result.AutoFixed {
		t.Errorf("expected auto_fixed=true")
	}
	if len(mock.calls) != 3 {
		t.Fatalf("expected 3 calls (report, fix, re-check), got %d", len(mock.calls))
	}
	if mock.calls[1].Command != "ruff check --quiet --fix-only --exit-non-zero-on-fix ." {
		t.Errorf("unexpected fix command %q", mock.calls[1].Command)
	}
	if mock.calls[2].Command != "ruff check --quiet ." {
		t.Errorf("unexpected re-check command %q", mock.calls[2].Command)
	}
}

func TestRunner_Run_AutoFixStillFails(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 1, Stdout: "src/app.py:10:5: E501 line too long (88 > 79 characters)\n"}},
			{Out: &Output{Status: 0}},
			{Out: &Output{Status: 1, Stdout: "src/app.py:10:5: E501 line too long (88 > 79 characters)\n"}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	cfg := pyConfig()
	cfg.Fix = true

	result, err := runner.Run("/tmp/test", cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("expected success=false even after fix attempt")
	}
	if !result.AutoFixed {
		t.Errorf("expected auto_fixed=true (fix was attempted)")
	}
	if len(result.Result.Errors) != 1 {
		t.Errorf("expected remaining finding after fix, got %d", len(result.Result.Errors))
	}
}

func TestRunner_Run_NoFixWhenPassing(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 0}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	cfg := pyConfig()
	cfg.Fix = true

	result, err := runner.Run("/tmp/test", cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success=true")
	}
	if result.AutoFixed {
		t.Errorf("expected auto_fixed=false for a clean run")
	}
	if len(mock.calls) != 1 {
		t.Errorf("expected 1 call (no fix needed), got %d", len(mock.calls))
	}
}

func TestRunner_Run_AdapterOverride(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 0, Stdout: "Found 0 errors.\n"}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	result, err := runner.Run("/tmp/test", RunConfig{
		Linter:     "py-style",
		Adapter:    "ruff",
		Extensions: []string{"py"},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Linter != "py-style" {
		t.Errorf("expected result labelled py-style, got %q", result.Linter)
	}
	if len(mock.calls) != 1 || mock.calls[0].Command != "ruff check --quiet ." {
		t.Errorf("expected ruff command, got %v", mock.calls)
	}
}

func TestRunner_Run_UnknownLinter(t *testing.T) {
	runner := NewRunner(&mockCmd{}, &mockProbe{})

	_, err := runner.Run("/tmp/test", RunConfig{Linter: "pylint"})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unknown linter") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunner_Run_CommandError(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: -1}, Err: fmt.Errorf("exec: sh not found")},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	_, err := runner.Run("/tmp/test", pyConfig())

	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunner_Run_ConfigurationErrorSurfaces(t *testing.T) {
	mock := &mockCmd{}
	runner := NewRunner(mock, &mockProbe{})

	cfg := pyConfig()
	cfg.Extensions = []string{"js"}

	_, err := runner.Run("/tmp/test", cfg)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if len(mock.calls) != 0 {
		t.Errorf("expected no command calls, got %d", len(mock.calls))
	}
}

func TestRunner_Run_DefaultTimeout(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Out: &Output{Status: 0}},
		},
	}
	runner := NewRunner(mock, &mockProbe{})

	cfg := pyConfig()
	cfg.Timeout = 0

	result, err := runner.Run("/tmp/test", cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success=true")
	}
}

// slowAdapter blocks until its context expires.
type slowAdapter struct{}

func (s *slowAdapter) Name() string { return "slow" }

func (s *slowAdapter) VerifySetup(ctx context.Context, dir string, prefix string) error {
	return nil
}

func (s *slowAdapter) Lint(ctx context.Context, dir string, opts LintOpts) (*Output, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *slowAdapter) ParseOutput(dir string, out *Output) *Result {
	return NewResult(false)
}

func TestRunner_Run_Timeout(t *testing.T) {
	runner := NewRunner(&mockCmd{}, &mockProbe{})
	runner.Register(&slowAdapter{})

	result, err := runner.Run("/tmp/test", RunConfig{
		Linter:  "slow",
		Timeout: 10 * time.Millisecond,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Error("expected success=false on timeout")
	}
	if result.Status != -1 {
		t.Errorf("expected status=-1 on timeout, got %d", result.Status)
	}
	if !strings.HasPrefix(result.Summary, "timeout after") {
		t.Errorf("expected timeout summary, got %q", result.Summary)
	}
}

func TestRunner_Names(t *testing.T) {
	runner := NewRunner(&mockCmd{}, &mockProbe{})

	names := runner.Names()

	want := []string{"eslint", "ruff", "typescript"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("expected names[%d]=%q, got %q", i, name, names[i])
		}
	}
}

func TestRunner_Register_Replaces(t *testing.T) {
	runner := NewRunner(&mockCmd{}, &mockProbe{})
	runner.Register(&slowAdapter{})
	runner.Register(&slowAdapter{})

	adapter, err := runner.Adapter("slow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter.Name() != "slow" {
		t.Errorf("expected slow adapter, got %q", adapter.Name())
	}
	if len(runner.Names()) != 4 {
		t.Errorf("expected 4 adapters, got %d", len(runner.Names()))
	}
}
