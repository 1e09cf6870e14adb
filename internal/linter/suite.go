package linter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SuiteLinterResult holds the result of a single linter within a suite run.
type SuiteLinterResult struct {
	Linter    string `json:"linter"`
	Passed    bool   `json:"passed"`
	AutoFixed bool   `json:"auto_fixed,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// SuiteFailure describes a remaining failure after a suite run.
type SuiteFailure struct {
	Errors  int    `json:"errors,omitempty"`
	Summary string `json:"summary"`
}

// SuiteResult is the structured output of a full suite run.
type SuiteResult struct {
	Suite             string                  `json:"suite"`
	Target            string                  `json:"target"`
	Passed            bool                    `json:"passed"`
	Linters           []SuiteLinterResult     `json:"linters"`
	RemainingFailures map[string]SuiteFailure `json:"remaining_failures,omitempty"`
}

// JSON returns the suite result as indented JSON.
func (s *SuiteResult) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SuiteProgress receives per-linter notifications while a suite runs.
type SuiteProgress interface {
	StartLinter(name string)
	FinishLinter(name string, passed bool, summary string)
	SkipLinter(name, reason string)
}

// SuiteOpts configures a suite run.
type SuiteOpts struct {
	Suite    string
	Target   string
	Configs  []RunConfig
	Continue bool          // run all linters even if some fail
	Verify   bool          // check each linter's setup first, skipping broken ones
	Progress SuiteProgress // optional, nil for silent runs
}

const verifyTimeout = 30 * time.Second

// RunSuite executes all linters of a suite against dir. Each run result
// is also returned individually for DB logging. A linter whose setup
// verification fails is recorded as skipped and does not fail the suite.
func (r *Runner) RunSuite(dir string, opts SuiteOpts) (*SuiteResult, []*RunResult, error) {
	suite := &SuiteResult{
		Suite:             opts.Suite,
		Target:            opts.Target,
		Passed:            true,
		RemainingFailures: make(map[string]SuiteFailure),
	}

	var allResults []*RunResult

	for _, cfg := range opts.Configs {
		if opts.Progress != nil {
			opts.Progress.StartLinter(cfg.Linter)
		}

		if opts.Verify {
			adapter, err := r.Adapter(cfg.adapterName())
			if err != nil {
				return nil, allResults, err
			}
			ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
			verifyErr := adapter.VerifySetup(ctx, dir, cfg.Prefix)
			cancel()
			if verifyErr != nil {
				suite.Linters = append(suite.Linters, SuiteLinterResult{
					Linter:  cfg.Linter,
					Skipped: true,
					Reason:  verifyErr.Error(),
				})
				if opts.Progress != nil {
					opts.Progress.SkipLinter(cfg.Linter, verifyErr.Error())
				}
				continue
			}
		}

		result, err := r.Run(dir, cfg)
		if err != nil {
			return nil, allResults, fmt.Errorf("run linter %q: %w", cfg.Linter, err)
		}
		allResults = append(allResults, result)

		suite.Linters = append(suite.Linters, SuiteLinterResult{
			Linter:    cfg.Linter,
			Passed:    result.Success,
			AutoFixed: result.AutoFixed,
			Summary:   result.Summary,
		})
		if opts.Progress != nil {
			opts.Progress.FinishLinter(cfg.Linter, result.Success, result.Summary)
		}

		if !result.Success {
			suite.Passed = false
			suite.RemainingFailures[cfg.Linter] = SuiteFailure{
				Errors:  len(result.Result.Errors),
				Summary: result.Summary,
			}
			if !opts.Continue {
				break
			}
		}
	}

	return suite, allResults, nil
}
