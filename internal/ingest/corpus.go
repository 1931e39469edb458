package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var ErrEmptyCorpus = errors.New("no corpus files matched")

// LoadCorpus reads every file in dir matching glob, sorted by file name. Any
// unreadable or unsupported file fails the whole load before analysis starts.
func LoadCorpus(dir, glob, titlePrefix string) ([]Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open corpus dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("match corpus glob %q: %w", glob, err)
	}
	sort.Strings(matches)

	out := make([]Source, 0, len(matches))
	seen := map[string]string{}
	for _, path := range matches {
		if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
			continue
		}
		src, err := ParseFile(path, titlePrefix)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		if prev, dup := seen[src.ID]; dup {
			return nil, fmt.Errorf("load %s: id %q already used by %s", src.Filename, src.ID, prev)
		}
		seen[src.ID] = src.Filename
		out = append(out, *src)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, filepath.Join(dir, glob))
	}
	return out, nil
}
