package compare

import (
	"fmt"

	"corpus_dashboard/internal/analysis"
	"corpus_dashboard/internal/lexical"
)

type Metric int

const (
	AvgSentenceLength Metric = iota
	MedianSentenceLength
	TypeTokenRatio
	LexicalDiversity
	FleschReadingEase
	FleschKincaidGrade
	GunningFog
	AvgWordLength
	PunctuationDensity
	SentimentCompound
	SentimentPositive
	SentimentNegative
	SentimentNeutral
)

// extractor reads one metric from a text. ok is false when the metric is
// undefined for that text.
type extractor func(t *analysis.TextAnalysis) (v float64, ok bool)

type metricInfo struct {
	name    string
	extract extractor
}

func defined(v float64) (float64, bool) { return v, true }

func optional(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

var metrics = map[Metric]metricInfo{
	AvgSentenceLength: {"avg_sentence_length", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.Sentences.Mean)
	}},
	MedianSentenceLength: {"median_sentence_length", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.Sentences.Median)
	}},
	TypeTokenRatio: {"type_token_ratio", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.Vocabulary.TypeTokenRatio)
	}},
	LexicalDiversity: {"lexical_diversity", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.Vocabulary.LexicalDiversity)
	}},
	FleschReadingEase: {"flesch_reading_ease", func(t *analysis.TextAnalysis) (float64, bool) {
		return optional(t.StyleMetrics.Readability.FleschReadingEase)
	}},
	FleschKincaidGrade: {"flesch_kincaid_grade", func(t *analysis.TextAnalysis) (float64, bool) {
		return optional(t.StyleMetrics.Readability.FleschKincaidGrade)
	}},
	GunningFog: {"gunning_fog", func(t *analysis.TextAnalysis) (float64, bool) {
		return optional(t.StyleMetrics.Readability.GunningFog)
	}},
	AvgWordLength: {"avg_word_length", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.WordLength.Average)
	}},
	PunctuationDensity: {"punctuation_density", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.StyleMetrics.Punctuation.DensityPer1000)
	}},
	SentimentCompound: {"compound", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.Sentiment.Vader.Compound)
	}},
	SentimentPositive: {"positive", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.Sentiment.Vader.Positive)
	}},
	SentimentNegative: {"negative", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.Sentiment.Vader.Negative)
	}},
	SentimentNeutral: {"neutral", func(t *analysis.TextAnalysis) (float64, bool) {
		return defined(t.Sentiment.Vader.Neutral)
	}},
}

func (m Metric) String() string {
	if info, ok := metrics[m]; ok {
		return info.name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

func ParseMetric(name string) (Metric, error) {
	for m, info := range metrics {
		if info.name == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Metrics lists every metric in declaration order.
func Metrics() []Metric {
	out := make([]Metric, 0, len(metrics))
	for m := AvgSentenceLength; m <= SentimentNeutral; m++ {
		out = append(out, m)
	}
	return out
}

type Delta struct {
	Metric  string  `json:"metric"`
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Range   float64 `json:"range"`
	MinText string  `json:"min_text"`
	MaxText string  `json:"max_text"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

// StyleDelta reports the spread of one metric across texts. Texts where the
// metric is undefined are left out of every statistic; ties for min and max
// go to the earliest text.
func StyleDelta(texts []analysis.TextAnalysis, m Metric) (Delta, error) {
	info, ok := metrics[m]
	if !ok {
		return Delta{}, fmt.Errorf("style delta: %w: %d", ErrUnknownMetric, int(m))
	}
	if len(texts) < 2 {
		return Delta{}, fmt.Errorf("style delta %s: %w: got %d", info.name, ErrTooFewTexts, len(texts))
	}

	d := Delta{Metric: info.name}
	values := make([]float64, 0, len(texts))
	for i := range texts {
		v, ok := info.extract(&texts[i])
		if !ok || !finite(v) {
			continue
		}
		if len(values) == 0 || v < d.Min {
			d.Min, d.MinText = v, texts[i].ID
		}
		if len(values) == 0 || v > d.Max {
			d.Max, d.MaxText = v, texts[i].ID
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return Delta{}, fmt.Errorf("style delta %s: %w", info.name, ErrNoValues)
	}
	d.Count = len(values)
	d.Range = d.Max - d.Min
	d.Mean = lexical.Mean(values)
	d.StdDev = lexical.StdDev(values)
	return d, nil
}
