// Package archive indexes the Codex session archive: a date-partitioned
// tree of append-only JSONL rollout files under <codex_home>/sessions.
//
// The archive can hold years of history, so everything here streams
// newest-first and stops as soon as the caller has seen enough.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asheshgoplani/codex-launch/internal/logging"
)

var scanLog = logging.ForComponent(logging.CompScan)

const (
	rolloutPrefix = "rollout-"
	rolloutSuffix = ".jsonl"
)

// walkLogFiles visits every rollout file under root in strict recency order:
// newest year, newest month within it, newest day, newest file. The visit
// callback returns false to stop the walk early. A missing root yields no
// visits and no error; an unreadable directory aborts the walk.
func walkLogFiles(root string, visit func(path string) bool) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	years, err := datePartitions(root)
	if err != nil {
		return err
	}
	for _, year := range years {
		months, err := datePartitions(year)
		if err != nil {
			return err
		}
		for _, month := range months {
			days, err := datePartitions(month)
			if err != nil {
				return err
			}
			for _, day := range days {
				files, err := rolloutFiles(day)
				if err != nil {
					return err
				}
				for _, f := range files {
					if !visit(f) {
						return nil
					}
				}
			}
		}
	}
	return nil
}

// datePartitions lists the numeric date subdirectories of parent, newest
// first. The partition scheme uses zero-padded fixed-width names (2026, 03,
// 07), so lexicographic descending order is recency order. Stray non-date
// directories are skipped.
func datePartitions(parent string) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", parent, err)
	}

	var dirs []string
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		if !isDateName(ent.Name()) {
			continue
		}
		dirs = append(dirs, filepath.Join(parent, ent.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	return dirs, nil
}

// rolloutFiles lists the rollout log files in a day directory, newest first.
// File names embed a sortable timestamp after the prefix.
func rolloutFiles(day string) ([]string, error) {
	entries, err := os.ReadDir(day)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", day, err)
	}

	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !strings.HasPrefix(name, rolloutPrefix) || !strings.HasSuffix(name, rolloutSuffix) {
			continue
		}
		files = append(files, filepath.Join(day, name))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// isDateName accepts purely numeric names of length 2 (month/day) or 4
// (year). Anything else is not part of the date partition.
func isDateName(name string) bool {
	if len(name) != 2 && len(name) != 4 {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
