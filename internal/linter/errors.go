package linter

import "fmt"

// DependencyMissingError reports that an adapter's required runtime is
// absent from the host.
type DependencyMissingError struct {
	Adapter    string
	Dependency string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s: required runtime %q not found", e.Adapter, e.Dependency)
}

// NotInstalledError reports that the tool's version probe failed even
// though the runtime is present.
type NotInstalledError struct {
	Adapter string
	Err     error
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s: tool not installed: %v", e.Adapter, e.Err)
}

func (e *NotInstalledError) Unwrap() error { return e.Err }

// ConfigurationError reports a lint request the adapter cannot honor.
// It is returned before any process is spawned.
type ConfigurationError struct {
	Adapter string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Adapter, e.Reason)
}
