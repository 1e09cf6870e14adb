package config

// LintConfig is the top-level configuration structure parsed from lintgate YAML.
type LintConfig struct {
	Lint Lint `yaml:"lint"`
}

// Lint defines the full lint setup: metadata, defaults, linters, and suites.
type Lint struct {
	Project        string            `yaml:"project"`
	Root           string            `yaml:"root"`
	Defaults       LinterDefaults    `yaml:"defaults"`
	DefaultLinters []string          `yaml:"default_linters"`
	Linters        map[string]Linter `yaml:"linters"`
	Suites         []Suite           `yaml:"suites"`
}

// LinterDefaults holds default values applied to linters that don't specify their own.
type LinterDefaults struct {
	Timeout       string `yaml:"timeout"`
	CommandPrefix string `yaml:"command_prefix"`
}

// Linter defines a single configured linter run. Adapter defaults to the
// linter's own name, so `ruff:` without an adapter field uses the ruff
// adapter.
type Linter struct {
	Adapter       string   `yaml:"adapter"`
	Extensions    []string `yaml:"extensions"`
	ExtraArgs     string   `yaml:"extra_args"`
	Fix           bool     `yaml:"fix"`
	Timeout       string   `yaml:"timeout"`
	CommandPrefix string   `yaml:"command_prefix"`
}

// Suite defines a named group of linters run together as one gate.
type Suite struct {
	ID                string   `yaml:"id"`
	Linters           []string `yaml:"linters"`
	ContinueOnFailure bool     `yaml:"continue_on_failure"`
	Verify            bool     `yaml:"verify"`
}

// FindSuite returns the suite with the given id.
func (l *Lint) FindSuite(id string) (*Suite, bool) {
	for i := range l.Suites {
		if l.Suites[i].ID == id {
			return &l.Suites[i], true
		}
	}
	return nil, false
}
