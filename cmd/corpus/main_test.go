package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), "corpus %s\n%s", strings.Join(args, " "), out.String())
	return out.String()
}

func TestAnalyzeHistoryAndLogsExport(t *testing.T) {
	corpus := t.TempDir()
	for name, body := range map[string]string{
		"Nietzsche_Twilight of the Idols.txt": "Out of life's school of war: what does not kill me makes me stronger.",
		"Nietzsche_The Gay Science.txt":       "God is dead. God remains dead. And we have killed him.",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(corpus, name), []byte(body), 0o644))
	}
	ws := filepath.Join(t.TempDir(), "ws")

	out := runCLI(t, "analyze", "--dir", corpus, "--glob", "Nietzsche_*.txt", "--title-prefix", "Nietzsche_", "--out", ws, "--workers", "2", "--db")
	assert.Contains(t, out, "2 texts, 1 pairs")
	assert.FileExists(t, filepath.Join(ws, "data", "analysis.json"))

	_, session, ok := strings.Cut(out, "log:")
	require.True(t, ok, "analyze output has no session log: %s", out)
	assert.FileExists(t, strings.TrimSpace(session))

	out = runCLI(t, "history", "--workspace", ws)
	assert.Contains(t, out, "texts=2")

	dest := filepath.Join(t.TempDir(), "logs.zip")
	runCLI(t, "logs", "export", dest, "--workspace", ws)
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestAnalyzeFailsOnMissingDir(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"analyze", "--dir", filepath.Join(t.TempDir(), "nope"), "--out", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
