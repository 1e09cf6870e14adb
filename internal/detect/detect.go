package detect

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DetectResult holds the linter suggestion analysis for a target tree.
type DetectResult struct {
	Linters    []string       `json:"linters"`
	Reasons    []string       `json:"reasons"`
	Extensions map[string]int `json:"extensions"`
}

// extensionLinters maps source file extensions to the linters that cover them.
var extensionLinters = map[string][]string{
	".py":  {"ruff"},
	".js":  {"eslint"},
	".jsx": {"eslint"},
	".ts":  {"eslint", "typescript"},
	".tsx": {"eslint"},
}

// skipDirs are never descended into during the census.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".tox":         true,
	".mypy_cache":  true,
	".ruff_cache":  true,
	".next":        true,
	"coverage":     true,
}

// Scan walks the target tree and counts lintable files by extension.
func Scan(dir string) (map[string]int, error) {
	counts := make(map[string]int)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(d.Name())
		if _, ok := extensionLinters[ext]; ok {
			counts[ext]++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return counts, nil
}

// Detect suggests linters for a target tree based on the source files present.
func Detect(dir string) (*DetectResult, error) {
	counts, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	return buildResult(counts), nil
}

// DetectFiles suggests linters for an explicit file list, e.g. the changed
// files of a commit. Paths are not checked for existence.
func DetectFiles(paths []string) *DetectResult {
	counts := make(map[string]int)
	for _, path := range paths {
		ext := filepath.Ext(path)
		if _, ok := extensionLinters[ext]; ok {
			counts[ext]++
		}
	}
	return buildResult(counts)
}

func buildResult(counts map[string]int) *DetectResult {
	result := &DetectResult{
		Linters:    []string{},
		Reasons:    []string{},
		Extensions: counts,
	}

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	suggested := make(map[string]bool)
	for _, ext := range exts {
		for _, name := range extensionLinters[ext] {
			if !suggested[name] {
				suggested[name] = true
				result.Linters = append(result.Linters, name)
			}
		}
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("%d %s file(s): %s", counts[ext], ext, strings.Join(extensionLinters[ext], ", ")))
	}
	sort.Strings(result.Linters)
	return result
}

// LinterExtensions returns the extensions (without dots) a linter covers,
// in the form the lint config expects.
func LinterExtensions(name string) []string {
	var exts []string
	for ext, linters := range extensionLinters {
		for _, l := range linters {
			if l == name {
				exts = append(exts, strings.TrimPrefix(ext, "."))
			}
		}
	}
	sort.Strings(exts)
	return exts
}
