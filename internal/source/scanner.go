package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScanPath discovers log files under root. A regular file is returned as
// the only result regardless of its name. A directory is walked recursively
// for files named logName; unreadable subdirectories are skipped.
// Failure to stat root itself is returned.
func ScanPath(root, logName string) ([]DiscoveredFile, error) {
	if logName == "" {
		logName = DefaultLogName
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return []DiscoveredFile{newDiscoveredFile(root)}, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || d.Name() != logName {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, newDiscoveredFile(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return files, nil
}

func newDiscoveredFile(path string) DiscoveredFile {
	session := filepath.Base(filepath.Dir(path))
	if abs, err := filepath.Abs(path); err == nil {
		session = filepath.Base(filepath.Dir(abs))
	}
	return DiscoveredFile{Path: path, Session: session}
}

// CountSessions returns the number of unique sessions in a set of discovered files.
func CountSessions(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Session] = struct{}{}
	}
	return len(seen)
}
