package compare

import (
	"corpus_dashboard/internal/analysis"
)

// FromAnalyses collects the vocabulary set of every analyzed text.
func FromAnalyses(texts []analysis.TextAnalysis) []Named {
	out := make([]Named, len(texts))
	for i, t := range texts {
		out[i] = Named{ID: t.ID, Words: t.Vocabulary.Set()}
	}
	return out
}

type SentimentSummary struct {
	Compound *Delta `json:"compound"`
	Positive *Delta `json:"positive"`
	Negative *Delta `json:"negative"`
	Neutral  *Delta `json:"neutral"`
}

type StyleSummary struct {
	SentenceLength     *Delta `json:"sentence_length"`
	TypeTokenRatio     *Delta `json:"type_token_ratio"`
	FleschReadingEase  *Delta `json:"flesch_reading_ease"`
	FleschKincaidGrade *Delta `json:"flesch_kincaid_grade"`
	AvgWordLength      *Delta `json:"avg_word_length"`
}

// SummarizeSentiment aggregates the four sentiment scores across texts.
func SummarizeSentiment(texts []analysis.TextAnalysis) (SentimentSummary, error) {
	var s SentimentSummary
	err := fill(texts, []target{
		{SentimentCompound, &s.Compound},
		{SentimentPositive, &s.Positive},
		{SentimentNegative, &s.Negative},
		{SentimentNeutral, &s.Neutral},
	})
	return s, err
}

// SummarizeStyle aggregates the headline style metrics. A readability metric
// undefined for every text is left null and the other fields are still filled.
func SummarizeStyle(texts []analysis.TextAnalysis) (StyleSummary, error) {
	var s StyleSummary
	err := fill(texts, []target{
		{AvgSentenceLength, &s.SentenceLength},
		{TypeTokenRatio, &s.TypeTokenRatio},
		{FleschReadingEase, &s.FleschReadingEase},
		{FleschKincaidGrade, &s.FleschKincaidGrade},
		{AvgWordLength, &s.AvgWordLength},
	})
	return s, err
}

type target struct {
	metric Metric
	dst    **Delta
}

// fill computes every target. Fields whose delta fails stay nil and the first
// failure is returned.
func fill(texts []analysis.TextAnalysis, targets []target) error {
	var first error
	for _, t := range targets {
		d, err := StyleDelta(texts, t.metric)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		*t.dst = &d
	}
	return first
}
