package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a lint configuration from the given YAML file path.
// After parsing, it applies defaults to linters and suites that don't
// specify their own values.
func Load(path string) (*LintConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg LintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a lint config in standard locations and loads the
// first one found. Search order: ./lintgate.yaml, ~/.lintgate/config.yaml
func LoadDefault() (*LintConfig, error) {
	candidates := []string{"lintgate.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".lintgate", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, fmt.Errorf("no lint config found (searched: %v)", candidates)
}

// applyDefaults merges top-level defaults into linters that don't set their
// own values, fills adapter names from linter keys, and resolves
// default_linters for suites that don't list their own.
func applyDefaults(cfg *LintConfig) {
	l := &cfg.Lint

	if l.Root == "" {
		l.Root = "."
	}

	for name, linter := range l.Linters {
		if linter.Adapter == "" {
			linter.Adapter = name
		}
		if linter.Timeout == "" && l.Defaults.Timeout != "" {
			linter.Timeout = l.Defaults.Timeout
		}
		if linter.CommandPrefix == "" && l.Defaults.CommandPrefix != "" {
			linter.CommandPrefix = l.Defaults.CommandPrefix
		}
		l.Linters[name] = linter
	}

	// Suites without an explicit linter list run the default linters.
	for i := range l.Suites {
		if len(l.Suites[i].Linters) == 0 {
			l.Suites[i].Linters = l.DefaultLinters
		}
	}
}
