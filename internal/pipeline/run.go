package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"corpus_dashboard/internal/analysis"
	"corpus_dashboard/internal/compare"
	"corpus_dashboard/internal/db"
	"corpus_dashboard/internal/ingest"
	"corpus_dashboard/internal/ngram"
	"corpus_dashboard/internal/report"
	"corpus_dashboard/internal/runlog"
	"corpus_dashboard/internal/sentiment"
	"corpus_dashboard/internal/workspace"
)

type ProgressFn func(percent int, stage, detail string)

func progress(on ProgressFn, percent int, stage, detail string) {
	if on == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	on(percent, stage, detail)
}

type Logger interface {
	Log(level, stage, message, detail string)
}

type Options struct {
	CorpusDir    string
	Glob         string
	TitlePrefix  string
	Workers      int
	Analysis     analysis.Options
	LexiconPath  string
	ConceptsPath string
	PersistDB    bool
}

type RunStats struct {
	RunID        string `json:"run_id"`
	Status       string `json:"status"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at"`
	TextCount    int    `json:"text_count"`
	PairCount    int    `json:"pair_count"`
	FailedTexts  int    `json:"failed_texts"`
	ArtifactPath string `json:"artifact_path"`
	SummaryPath  string `json:"summary_path"`
}

type Result struct {
	Artifact *report.Artifact `json:"-"`
	Stats    RunStats         `json:"stats"`
	Logs     []runlog.LogLine `json:"logs"`
}

// Analyze runs the whole batch: load the corpus, analyze every text on the
// worker pool, compare all pairs, then write analysis.json, summary.json and
// the run history. Loading failures abort before any analysis; a text that
// fails during analysis is kept with empty statistics.
func Analyze(ctx context.Context, layout workspace.Layout, opts Options, logger Logger, onProgress ProgressFn) (*Result, error) {
	started := time.Now()
	res := &Result{Stats: RunStats{
		RunID:     uuid.NewString(),
		Status:    "RUNNING",
		StartedAt: started.Format(time.RFC3339),
	}}

	var logMu sync.Mutex
	addLog := func(level, stage, message, detail string) {
		logMu.Lock()
		res.Logs = append(res.Logs, runlog.NewLine(level, stage, message, detail))
		logMu.Unlock()
		if logger != nil {
			logger.Log(level, stage, message, detail)
		}
	}
	fail := func(stage string, err error) (*Result, error) {
		res.Stats.Status = "FAILED"
		res.Stats.CompletedAt = time.Now().Format(time.RFC3339)
		addLog(runlog.LevelRisk, stage, "Run failed", err.Error())
		return res, err
	}

	addLog(runlog.LevelInfo, "BOOT", "Run started", fmt.Sprintf("id=%s dir=%s glob=%s", res.Stats.RunID, opts.CorpusDir, opts.Glob))
	progress(onProgress, 2, "BOOT", "Run started")

	engine, err := newEngine(opts)
	if err != nil {
		return fail("RESOURCES", err)
	}
	addLog(runlog.LevelInfo, "RESOURCES", "Lexicon and concept dictionary loaded", "")
	progress(onProgress, 5, "RESOURCES", "Resources loaded")

	sources, err := ingest.LoadCorpus(opts.CorpusDir, opts.Glob, opts.TitlePrefix)
	if err != nil {
		return fail("INGEST", err)
	}
	res.Stats.TextCount = len(sources)
	addLog(runlog.LevelAnalysis, "INGEST", "Corpus loaded", strconv.Itoa(len(sources))+" texts")
	progress(onProgress, 10, "INGEST", fmt.Sprintf("%d texts loaded", len(sources)))

	texts := make([]analysis.TextAnalysis, len(sources))
	var done int32
	errs := Run(len(sources), opts.Workers, func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ta, err := analyzeOne(engine, sources[i])
		texts[i] = ta
		n := atomic.AddInt32(&done, 1)
		progress(onProgress, 10+int(60*n)/len(sources), "ANALYZE", fmt.Sprintf("%d/%d %s", n, len(sources), sources[i].ID))
		if err != nil {
			addLog(runlog.LevelRisk, "ANALYZE", "Text analysis failed, kept empty", err.Error())
			return err
		}
		addLog(runlog.LevelAnalysis, "ANALYZE", "Text analyzed", fmt.Sprintf("%s words=%d unique=%d", ta.ID, ta.WordCount, ta.UniqueWords))
		return nil
	})
	if err := ctx.Err(); err != nil {
		return fail("ANALYZE", fmt.Errorf("analysis interrupted: %w", err))
	}
	res.Stats.FailedTexts = len(errs)

	comparative := report.Comparative{VocabularyOverlap: compare.Comparison{Pairs: []compare.Overlap{}}}
	if len(texts) < 2 {
		addLog(runlog.LevelRisk, "COMPARE", "Comparisons skipped", fmt.Sprintf("%d text(s), need at least 2", len(texts)))
	} else {
		comparative, err = compareAll(texts, opts.Workers, addLog)
		if err != nil {
			return fail("COMPARE", err)
		}
		res.Stats.PairCount = len(comparative.VocabularyOverlap.Pairs)
	}
	progress(onProgress, 85, "COMPARE", fmt.Sprintf("%d pairs compared", res.Stats.PairCount))

	res.Artifact = &report.Artifact{
		Metadata: report.Metadata{
			Generated:       time.Now().Format(time.RFC3339),
			RunID:           res.Stats.RunID,
			TotalTexts:      len(texts),
			AnalysisVersion: report.AnalysisVersion,
		},
		Texts:       texts,
		Comparative: comparative,
	}
	if err := report.Save(layout, res.Artifact); err != nil {
		return fail("REPORT", err)
	}
	res.Stats.ArtifactPath = layout.AnalysisPath()
	res.Stats.SummaryPath = layout.SummaryPath()
	addLog(runlog.LevelInfo, "REPORT", "Artifacts written", res.Stats.ArtifactPath)
	progress(onProgress, 95, "REPORT", "Artifacts written")

	if opts.PersistDB {
		if err := db.PersistRun(layout.DBPath(), res.Stats.ArtifactPath, res.Artifact); err != nil {
			addLog(runlog.LevelRisk, "DB", "Run history not recorded", err.Error())
		} else {
			addLog(runlog.LevelInfo, "DB", "Run history recorded", layout.DBPath())
		}
	}

	res.Stats.Status = "DONE"
	res.Stats.CompletedAt = time.Now().Format(time.RFC3339)
	addLog(runlog.LevelInfo, "BOOT", "Run completed", fmt.Sprintf("id=%s elapsed=%s", res.Stats.RunID, time.Since(started).Round(time.Millisecond)))
	progress(onProgress, 100, "DONE", "Run completed")
	return res, nil
}

func newEngine(opts Options) (*analysis.Engine, error) {
	var scorer sentiment.Scorer = sentiment.NewVader()
	if opts.LexiconPath != "" {
		lex, err := sentiment.LoadLexiconFile(opts.LexiconPath)
		if err != nil {
			return nil, err
		}
		scorer = sentiment.NewAnalyzer(lex)
	}
	concepts := ngram.DefaultDictionary()
	if opts.ConceptsPath != "" {
		var err error
		if concepts, err = ngram.LoadDictionaryFile(opts.ConceptsPath); err != nil {
			return nil, err
		}
	}
	return analysis.NewEngine(scorer, concepts, opts.Analysis), nil
}

// analyzeOne isolates a panicking text so the rest of the batch survives. The
// failed text keeps its identity with zero statistics.
func analyzeOne(e *analysis.Engine, src ingest.Source) (ta analysis.TextAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			empty := src
			empty.Text = ""
			ta = e.Analyze(empty)
			err = fmt.Errorf("analyze %s: %v", src.ID, r)
		}
	}()
	return e.Analyze(src), nil
}

func compareAll(texts []analysis.TextAnalysis, workers int, addLog func(level, stage, message, detail string)) (report.Comparative, error) {
	var out report.Comparative
	comparison, err := compare.SimilarityMatrix(compare.FromAnalyses(texts), Runner(workers))
	if err != nil {
		return out, fmt.Errorf("compare texts: %w", err)
	}
	out.VocabularyOverlap = comparison
	addLog(runlog.LevelAnalysis, "COMPARE", "Vocabulary overlap computed", strconv.Itoa(len(comparison.Pairs))+" pairs")

	if out.SentimentSummary, err = compare.SummarizeSentiment(texts); err != nil {
		addLog(runlog.LevelRisk, "COMPARE", "Sentiment summary incomplete", err.Error())
	}
	if out.StyleSummary, err = compare.SummarizeStyle(texts); err != nil {
		addLog(runlog.LevelRisk, "COMPARE", "Style summary incomplete", err.Error())
	}
	return out, nil
}
