package linter

import "fmt"

// Output is the raw process result of a lint invocation. Lint returns it
// unmodified; ParseOutput consumes it.
type Output struct {
	Status int    `json:"status"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Finding is one normalized lint finding. FirstLine and LastLine are
// 1-based; single-line findings carry the same value in both.
type Finding struct {
	Path      string `json:"path"`
	FirstLine int    `json:"first_line"`
	LastLine  int    `json:"last_line"`
	Message   string `json:"message"`
}

// Result is the canonical parse result shared by every adapter. Success
// reflects the tool's exit status, not the finding count: a fix-only run
// can fail with zero findings, and a tool crash produces the same shape.
type Result struct {
	Success  bool      `json:"success"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// NewResult returns a Result with empty severity buckets. Buckets are
// never nil so consumers see [] rather than null in JSON.
func NewResult(success bool) *Result {
	return &Result{
		Success:  success,
		Errors:   []Finding{},
		Warnings: []Finding{},
	}
}

// Total returns the number of findings across all buckets.
func (r *Result) Total() int {
	return len(r.Errors) + len(r.Warnings)
}

// Summary renders a short human-readable line for the result.
func (r *Result) Summary() string {
	if r.Total() == 0 {
		if r.Success {
			return "clean"
		}
		return "failed (no findings parsed)"
	}
	return fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}
