package analysis

import (
	"corpus_dashboard/internal/lexical"
	"corpus_dashboard/internal/ngram"
	"corpus_dashboard/internal/readability"
	"corpus_dashboard/internal/sentiment"
	"corpus_dashboard/internal/tokenize"
)

type TextAnalysis struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Translator   string               `json:"translator,omitempty"`
	Filename     string               `json:"filename"`
	WordCount    int                  `json:"word_count"`
	UniqueWords  int                  `json:"unique_words"`
	BagOfWords   lexical.BagOfWords   `json:"bag_of_words"`
	Sentiment    Sentiment            `json:"sentiment"`
	StyleMetrics StyleMetrics         `json:"style_metrics"`
	NGrams       NGrams               `json:"ngrams"`
	KeyConcepts  []ngram.ConceptMatch `json:"key_concepts"`

	// Vocabulary is kept for the comparative pass and is not serialized.
	Vocabulary lexical.Vocabulary `json:"-"`
}

type Sentiment struct {
	Vader sentiment.Scores `json:"vader"`
	Label string           `json:"label"`
}

type StyleMetrics struct {
	Sentences   lexical.SentenceStats `json:"sentences"`
	Vocabulary  VocabularyMetrics     `json:"vocabulary"`
	Readability readability.Scores    `json:"readability"`
	WordLength  lexical.WordLength    `json:"word_length"`
	Punctuation PunctuationMetrics    `json:"punctuation"`
}

type VocabularyMetrics struct {
	TotalWords       int     `json:"total_words"`
	UniqueWords      int     `json:"unique_words"`
	TypeTokenRatio   float64 `json:"type_token_ratio"`
	LexicalDiversity float64 `json:"lexical_diversity"`
}

type PunctuationMetrics struct {
	tokenize.Punctuation
	DensityPer1000 float64 `json:"density_per_1000"`
}

type NGrams struct {
	Bigrams  []ngram.Phrase `json:"bigrams"`
	Trigrams []ngram.Phrase `json:"trigrams"`
}
