package runlog

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"corpus_dashboard/internal/workspace"
)

const (
	LevelInfo     = "INFO"
	LevelAnalysis = "ANALYSIS"
	LevelRisk     = "RISK"
)

type LogLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (l LogLine) String() string {
	s := fmt.Sprintf("[%s] [%s] [%s] %s", l.Time, l.Level, l.Stage, l.Message)
	if strings.TrimSpace(l.Detail) != "" {
		s += " | " + l.Detail
	}
	return s
}

func NewLine(level, stage, message, detail string) LogLine {
	return LogLine{
		Time:    time.Now().Format("15:04:05.000"),
		Level:   level,
		Stage:   stage,
		Message: message,
		Detail:  detail,
	}
}

// Archive appends log lines to a per-session file under logs/ and keeps run
// snapshots in logs/runs/. A nil *Archive discards everything.
type Archive struct {
	mu          sync.Mutex
	rootDir     string
	runsDir     string
	sessionFile string
	echo        io.Writer
}

type runSnapshot struct {
	CapturedAt string `json:"captured_at"`
	Trigger    string `json:"trigger"`
	Run        any    `json:"run"`
}

// Open starts a new session file. When echo is non-nil every line is also
// written there.
func Open(layout workspace.Layout, echo io.Writer) (*Archive, error) {
	if err := os.MkdirAll(layout.Runs, 0o755); err != nil {
		return nil, fmt.Errorf("create runs dir: %w", err)
	}
	a := &Archive{
		rootDir:     layout.Logs,
		runsDir:     layout.Runs,
		sessionFile: filepath.Join(layout.Logs, "session-"+time.Now().Format("20060102-150405")+".log"),
		echo:        echo,
	}
	a.Log(LevelInfo, "BOOT", "log archive initialized", layout.Logs)
	return a, nil
}

func (a *Archive) SessionFile() string {
	if a == nil {
		return ""
	}
	return a.sessionFile
}

func (a *Archive) Log(level, stage, message, detail string) {
	a.Append(NewLine(level, stage, message, detail))
}

func (a *Archive) Append(lines ...LogLine) {
	if a == nil || len(lines) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	if a.echo != nil {
		_, _ = io.WriteString(a.echo, b.String())
	}
	f, err := os.OpenFile(a.sessionFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(b.String())
}

func (a *Archive) Progress(percent int, stage, detail string) {
	a.Log(LevelAnalysis, stage, fmt.Sprintf("progress %d%%", percent), detail)
}

// PersistRunSnapshot writes run as JSON to logs/runs/ and returns the path.
func (a *Archive) PersistRunSnapshot(trigger, runID string, run any) (string, error) {
	if a == nil {
		return "", fmt.Errorf("log archive unavailable")
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	name := time.Now().Format("20060102-150405")
	if id := sanitizeForFilename(runID); id != "" {
		name += "-" + id
	}
	trigger = sanitizeForFilename(trigger)
	if trigger != "" {
		name += "-" + trigger
	}
	path := filepath.Join(a.runsDir, name+".json")
	snap := runSnapshot{
		CapturedAt: time.Now().Format(time.RFC3339),
		Trigger:    trigger,
		Run:        run,
	}
	if err := workspace.SaveJSON(path, snap); err != nil {
		return "", fmt.Errorf("write run snapshot: %w", err)
	}
	return path, nil
}

// ExportZip bundles every file under logs/ into dest.
func (a *Archive) ExportZip(dest string) error {
	if a == nil {
		return fmt.Errorf("log archive unavailable")
	}
	return ExportDir(a.rootDir, dest)
}

func ExportDir(root, dest string) error {
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("destination path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer out.Close()

	zipWriter := zip.NewWriter(out)
	absDest, _ := filepath.Abs(dest)
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absDest {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zipWriter.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	})
	if err != nil {
		_ = zipWriter.Close()
		return fmt.Errorf("collect log files: %w", err)
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

func sanitizeForFilename(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return out
}
