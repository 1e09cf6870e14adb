package config

import (
	"fmt"
	"time"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// recognizedAdapters is the set of valid adapter names for linters.
var recognizedAdapters = map[string]bool{
	"ruff":       true,
	"eslint":     true,
	"typescript": true,
}

// Validate checks a LintConfig for structural and semantic errors.
// It returns a slice of all validation errors found (empty if valid).
func Validate(cfg *LintConfig) []ValidationError {
	var errs []ValidationError
	l := cfg.Lint

	// Required fields
	if l.Project == "" {
		errs = append(errs, ValidationError{Field: "lint.project", Message: "is required"})
	}
	if len(l.Linters) == 0 {
		errs = append(errs, ValidationError{Field: "lint.linters", Message: "at least one linter is required"})
	}

	// Per-linter checks
	for name, linter := range l.Linters {
		prefix := fmt.Sprintf("lint.linters.%s", name)

		if !recognizedAdapters[linter.Adapter] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".adapter",
				Message: fmt.Sprintf("unrecognized adapter %q", linter.Adapter),
			})
		}
		if len(linter.Extensions) == 0 {
			errs = append(errs, ValidationError{
				Field:   prefix + ".extensions",
				Message: "at least one extension is required",
			})
		}
		if linter.Timeout != "" {
			if _, err := time.ParseDuration(linter.Timeout); err != nil {
				errs = append(errs, ValidationError{
					Field:   prefix + ".timeout",
					Message: fmt.Sprintf("invalid duration %q", linter.Timeout),
				})
			}
		}
	}

	// Validate linter references in default_linters
	for _, name := range l.DefaultLinters {
		if _, ok := l.Linters[name]; !ok {
			errs = append(errs, ValidationError{
				Field:   "lint.default_linters",
				Message: fmt.Sprintf("references undefined linter %q", name),
			})
		}
	}

	// Validate suites: required ids, duplicates, linter references
	suiteIDs := make(map[string]bool)
	for i, s := range l.Suites {
		prefix := fmt.Sprintf("lint.suites[%d]", i)

		if s.ID == "" {
			errs = append(errs, ValidationError{Field: prefix + ".id", Message: "is required"})
			continue
		}
		if suiteIDs[s.ID] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".id",
				Message: fmt.Sprintf("duplicate suite ID %q", s.ID),
			})
		}
		suiteIDs[s.ID] = true

		for _, name := range s.Linters {
			if _, ok := l.Linters[name]; !ok {
				errs = append(errs, ValidationError{
					Field:   prefix + ".linters",
					Message: fmt.Sprintf("references undefined linter %q", name),
				})
			}
		}
	}

	return errs
}
