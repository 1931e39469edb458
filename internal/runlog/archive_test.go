package runlog

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus_dashboard/internal/workspace"
)

func openArchive(t *testing.T, echo io.Writer) *Archive {
	t.Helper()
	layout, err := workspace.EnsureAt(filepath.Join(t.TempDir(), "ws"))
	require.NoError(t, err)
	a, err := Open(layout, echo)
	require.NoError(t, err)
	return a
}

func TestArchiveAppendsSessionLines(t *testing.T) {
	var echo bytes.Buffer
	a := openArchive(t, &echo)
	a.Log(LevelRisk, "INGEST", "text skipped", "empty.txt")
	a.Progress(40, "ANALYZE", "2/5 texts")

	raw, err := os.ReadFile(a.SessionFile())
	require.NoError(t, err)
	got := string(raw)
	for _, want := range []string{"[INFO] [BOOT] log archive initialized", "[RISK] [INGEST] text skipped | empty.txt", "[ANALYSIS] [ANALYZE] progress 40%"} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, got, echo.String(), "echo differs from session file")
}

func TestNilArchiveIsSafe(t *testing.T) {
	var a *Archive
	a.Log(LevelInfo, "BOOT", "ignored", "")
	assert.Empty(t, a.SessionFile())
	_, err := a.PersistRunSnapshot("analyze", "x", nil)
	assert.Error(t, err)
}

func TestArchiveWithoutEchoWritesSessionOnly(t *testing.T) {
	a := openArchive(t, nil)
	a.Log(LevelInfo, "REPORT", "Artifacts written", "analysis.json")

	raw, err := os.ReadFile(a.SessionFile())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[INFO] [REPORT] Artifacts written | analysis.json")
}

func TestPersistRunSnapshotAndExport(t *testing.T) {
	a := openArchive(t, nil)
	path, err := a.PersistRunSnapshot("Analyze Corpus", "3F2A-run", map[string]int{"texts": 3})
	require.NoError(t, err)
	assert.Regexp(t, `-3f2a-run-analyze-corpus\.json$`, path)

	dest := filepath.Join(t.TempDir(), "logs.zip")
	require.NoError(t, a.ExportZip(dest))
	zr, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	require.Len(t, names, 2, "expected session log and snapshot")
	assert.Condition(t, func() bool {
		for _, n := range names {
			if filepath.Dir(n) == "runs" {
				return true
			}
		}
		return false
	}, "snapshot missing from zip: %v", names)
}

func TestSanitizeForFilename(t *testing.T) {
	assert.Equal(t, "run-1-final", sanitizeForFilename("  Run #1 -- Final! "))
}
