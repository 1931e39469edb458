package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const DefaultDirName = "corpus-workspace"

const (
	AnalysisFile = "analysis.json"
	SummaryFile  = "summary.json"
	DBFile       = "runs.db"
)

// Layout is the on-disk workspace: data/ holds the artifacts and run
// history, logs/ the session logs and per-run snapshots.
type Layout struct {
	Root string
	Data string
	Logs string
	Runs string
}

func EnsureDefault() (Layout, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Layout{}, fmt.Errorf("resolve working dir: %w", err)
	}
	return EnsureAt(filepath.Join(wd, DefaultDirName))
}

func EnsureAt(base string) (Layout, error) {
	l := Layout{
		Root: base,
		Data: filepath.Join(base, "data"),
		Logs: filepath.Join(base, "logs"),
		Runs: filepath.Join(base, "logs", "runs"),
	}
	for _, p := range []string{l.Data, l.Runs} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return Layout{}, fmt.Errorf("mkdir %s: %w", p, err)
		}
	}
	return l, nil
}

func (l Layout) AnalysisPath() string { return filepath.Join(l.Data, AnalysisFile) }
func (l Layout) SummaryPath() string  { return filepath.Join(l.Data, SummaryFile) }
func (l Layout) DBPath() string       { return filepath.Join(l.Data, DBFile) }
