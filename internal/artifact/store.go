package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasnoah/lintgate/internal/linter"
)

// Store manages raw linter output and parsed results on disk.
// Layout: <baseDir>/<target-slug>/<run-id>/<linter>/{stdout.txt,stderr.txt,result.json}
type Store struct {
	baseDir string // defaults to ~/.lintgate/runs
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultStore returns a Store at ~/.lintgate/runs, creating the directory if needed.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".lintgate", "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

var slugRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// TargetSlug converts a target path into a flat directory name.
func TargetSlug(target string) string {
	s := slugRe.ReplaceAllString(target, "-")
	s = strings.Trim(s, "-")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "root"
	}
	return s
}

// targetDir returns the directory holding all runs for a target.
func (s *Store) targetDir(target string) string {
	return filepath.Join(s.baseDir, TargetSlug(target))
}

// runDir returns the directory for one run id under a target.
func (s *Store) runDir(target string, runID int64) string {
	return filepath.Join(s.targetDir(target), strconv.FormatInt(runID, 10))
}

// RunDir returns the directory holding one linter's artifacts for a run.
func (s *Store) RunDir(target string, runID int64, linterName string) string {
	return filepath.Join(s.runDir(target, runID), linterName)
}

// SaveRun writes the raw output and parsed result for one linter run.
func (s *Store) SaveRun(target string, runID int64, res *linter.RunResult) error {
	dir := s.RunDir(target, runID, res.Linter)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir run dir: %w", err)
	}
	if err := WriteAtomic(filepath.Join(dir, "stdout.txt"), []byte(res.Stdout)); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	if err := WriteAtomic(filepath.Join(dir, "stderr.txt"), []byte(res.Stderr)); err != nil {
		return fmt.Errorf("write stderr: %w", err)
	}
	return WriteJSON(filepath.Join(dir, "result.json"), res)
}

// LoadResult reads the parsed result for one linter run.
func (s *Store) LoadResult(target string, runID int64, linterName string) (*linter.RunResult, error) {
	var res linter.RunResult
	path := filepath.Join(s.RunDir(target, runID, linterName), "result.json")
	if err := ReadJSON(path, &res); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no stored result for run %d linter %s", runID, linterName)
		}
		return nil, err
	}
	return &res, nil
}

// LoadStdout reads the raw stdout captured for one linter run.
func (s *Store) LoadStdout(target string, runID int64, linterName string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(target, runID, linterName), "stdout.txt"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListRuns returns the run ids stored for a target, oldest first.
func (s *Store) ListRuns(target string) ([]int64, error) {
	entries, err := os.ReadDir(s.targetDir(target))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", s.targetDir(target), err)
	}

	var ids []int64
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, err := strconv.ParseInt(entry.Name(), 10, 64)
		if err != nil {
			continue // skip non-numeric directories
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// RunLinters returns the linter names with artifacts stored for one run.
func (s *Store) RunLinters(target string, runID int64) ([]string, error) {
	entries, err := os.ReadDir(s.runDir(target, runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", s.runDir(target, runID), err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Prune removes all but the newest keep runs for a target.
func (s *Store) Prune(target string, keep int) error {
	ids, err := s.ListRuns(target)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	if len(ids) <= keep {
		return nil
	}
	for _, id := range ids[:len(ids)-keep] {
		if err := os.RemoveAll(s.runDir(target, id)); err != nil {
			return fmt.Errorf("remove run %d: %w", id, err)
		}
	}
	return nil
}

// Delete removes all stored artifacts for a target.
func (s *Store) Delete(target string) error {
	dir := s.targetDir(target)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}
