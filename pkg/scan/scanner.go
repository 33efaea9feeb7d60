// Package scan resolves CLI path arguments into an ordered list of
// resize targets.
//
// Explicit file arguments are always targets, regardless of extension.
// Directory arguments are enumerated (immediate children, or the whole
// subtree in recursive mode) and filtered through a Filters allowlist.
// Missing paths are collected rather than aborting the scan, so one bad
// argument never stops the batch.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Results holds the outcome of resolving all path arguments.
type Results struct {
	Targets []string // Files to process, in discovery order
	Missing []string // Arguments that do not exist on disk
}

// Scanner resolves path arguments against the filesystem with filters.
// Directory traversal is sequential and lexically ordered, so target
// order is deterministic for a given tree.
type Scanner struct {
	paths     []string // Path arguments to resolve
	recursive bool     // Descend into subdirectories of directory arguments
	filters   *Filters // Criteria for entries found inside directories
}

// NewScanner creates a Scanner for the given path arguments.
// If filters is nil, the default extension allowlist applies.
func NewScanner(paths []string, recursive bool, filters *Filters) *Scanner {
	if filters == nil {
		filters = NewFilters()
	}
	return &Scanner{
		paths:     paths,
		recursive: recursive,
		filters:   filters,
	}
}

// Scan resolves every path argument and returns the collected targets.
// Unreadable directories encountered mid-walk are logged and skipped;
// only a completely unusable root argument lands in Results.Missing.
func (s *Scanner) Scan() *Results {
	results := &Results{}

	for _, path := range s.paths {
		info, err := os.Stat(path)
		if err != nil {
			results.Missing = append(results.Missing, path)
			continue
		}

		if !info.IsDir() {
			// Explicit files are trusted; no extension filtering.
			results.Targets = append(results.Targets, path)
			continue
		}

		if s.recursive {
			s.walkDir(path, results)
		} else {
			s.listDir(path, results)
		}
	}

	return results
}

// listDir collects matching files from the immediate contents of dir.
func (s *Scanner) listDir(dir string, results *Results) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		results.Missing = append(results.Missing, dir)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if s.filters.Matches(entry.Name()) {
			results.Targets = append(results.Targets, filepath.Join(dir, entry.Name()))
		}
	}
}

// walkDir collects matching files from the whole subtree rooted at dir.
func (s *Scanner) walkDir(dir string, results *Results) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithFields(log.Fields{
				"path":  path,
				"error": err,
			}).Warn("skipping unreadable path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.filters.Matches(d.Name()) {
			results.Targets = append(results.Targets, path)
		}
		return nil
	})
	if err != nil {
		results.Missing = append(results.Missing, dir)
	}
}
