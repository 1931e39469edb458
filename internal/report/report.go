package report

import (
	"fmt"

	"corpus_dashboard/internal/analysis"
	"corpus_dashboard/internal/compare"
	"corpus_dashboard/internal/workspace"
)

const AnalysisVersion = "1.0"

type Metadata struct {
	Generated       string `json:"generated"`
	RunID           string `json:"run_id"`
	TotalTexts      int    `json:"total_texts"`
	AnalysisVersion string `json:"analysis_version"`
}

type Comparative struct {
	VocabularyOverlap compare.Comparison       `json:"vocabulary_overlap"`
	SentimentSummary  compare.SentimentSummary `json:"sentiment_summary"`
	StyleSummary      compare.StyleSummary     `json:"style_summary"`
}

// Artifact is the single immutable output of a run.
type Artifact struct {
	Metadata    Metadata                `json:"metadata"`
	Texts       []analysis.TextAnalysis `json:"texts"`
	Comparative Comparative             `json:"comparative"`
}

func (a *Artifact) Text(id string) (analysis.TextAnalysis, bool) {
	for _, t := range a.Texts {
		if t.ID == id {
			return t, true
		}
	}
	return analysis.TextAnalysis{}, false
}

type TextSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	WordCount      int      `json:"word_count"`
	UniqueWords    int      `json:"unique_words"`
	Sentiment      float64  `json:"sentiment"`
	SentimentLabel string   `json:"sentiment_label"`
	Readability    *float64 `json:"readability"`
}

// Summary is the compact companion of Artifact for quick dashboard loads.
type Summary struct {
	Metadata         Metadata                 `json:"metadata"`
	Texts            []TextSummary            `json:"texts"`
	SentimentSummary compare.SentimentSummary `json:"sentiment_summary"`
	StyleSummary     compare.StyleSummary     `json:"style_summary"`
}

func Summarize(a *Artifact) Summary {
	s := Summary{
		Metadata:         a.Metadata,
		Texts:            make([]TextSummary, 0, len(a.Texts)),
		SentimentSummary: a.Comparative.SentimentSummary,
		StyleSummary:     a.Comparative.StyleSummary,
	}
	for _, t := range a.Texts {
		s.Texts = append(s.Texts, TextSummary{
			ID:             t.ID,
			Title:          t.Title,
			WordCount:      t.WordCount,
			UniqueWords:    t.UniqueWords,
			Sentiment:      t.Sentiment.Vader.Compound,
			SentimentLabel: t.Sentiment.Label,
			Readability:    t.StyleMetrics.Readability.FleschReadingEase,
		})
	}
	return s
}

func Load(path string) (*Artifact, error) {
	var a Artifact
	if err := workspace.LoadJSON(path, &a); err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	return &a, nil
}

// Save writes the artifact and its summary next to each other.
func Save(layout workspace.Layout, a *Artifact) error {
	if err := workspace.SaveJSON(layout.AnalysisPath(), a); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	if err := workspace.SaveJSON(layout.SummaryPath(), Summarize(a)); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}
