package analysis

import (
	"corpus_dashboard/internal/ingest"
	"corpus_dashboard/internal/lexical"
	"corpus_dashboard/internal/ngram"
	"corpus_dashboard/internal/readability"
	"corpus_dashboard/internal/sentiment"
	"corpus_dashboard/internal/tokenize"
)

const (
	DefaultBagOfWordsTopK = 100
	DefaultNGramTopK      = ngram.DefaultTopK
)

type Options struct {
	BagOfWordsTopK      int
	NGramTopK           int
	SentimentChunkRunes int
}

func DefaultOptions() Options {
	return Options{
		BagOfWordsTopK:      DefaultBagOfWordsTopK,
		NGramTopK:           DefaultNGramTopK,
		SentimentChunkRunes: sentiment.DefaultChunkRunes,
	}
}

// Engine runs every per-text analysis. It holds only read-only resources and
// is safe for concurrent use.
type Engine struct {
	scorer    sentiment.Scorer
	concepts  ngram.Dictionary
	opts      Options
}

func NewEngine(scorer sentiment.Scorer, concepts ngram.Dictionary, opts Options) *Engine {
	def := DefaultOptions()
	if opts.BagOfWordsTopK <= 0 {
		opts.BagOfWordsTopK = def.BagOfWordsTopK
	}
	if opts.NGramTopK <= 0 {
		opts.NGramTopK = def.NGramTopK
	}
	if opts.SentimentChunkRunes <= 0 {
		opts.SentimentChunkRunes = def.SentimentChunkRunes
	}
	return &Engine{scorer: scorer, concepts: concepts, opts: opts}
}

// Analyze never fails: empty or malformed text yields zero counts and
// undefined readability.
func (e *Engine) Analyze(src ingest.Source) TextAnalysis {
	doc := tokenize.Parse(src.Text)
	words := doc.Words()
	vocab := lexical.BuildVocabulary(words)

	scores := sentiment.Document(e.scorer, src.Text, e.opts.SentimentChunkRunes)
	marks := doc.Punctuation

	return TextAnalysis{
		ID:          src.ID,
		Title:       src.Title,
		Translator:  src.Translator,
		Filename:    src.Filename,
		WordCount:   vocab.Total(),
		UniqueWords: vocab.Unique(),
		BagOfWords:  lexical.BuildBagOfWords(words, e.opts.BagOfWordsTopK),
		Sentiment: Sentiment{
			Vader: scores,
			Label: scores.Label(),
		},
		StyleMetrics: StyleMetrics{
			Sentences: lexical.Sentences(doc.SentenceLengths()),
			Vocabulary: VocabularyMetrics{
				TotalWords:       vocab.Total(),
				UniqueWords:      vocab.Unique(),
				TypeTokenRatio:   vocab.TypeTokenRatio(),
				LexicalDiversity: vocab.LexicalDiversity(),
			},
			Readability: readability.Compute(readability.Count(len(doc.Sentences), words)),
			WordLength:  lexical.WordLengths(words),
			Punctuation: PunctuationMetrics{
				Punctuation:    marks,
				DensityPer1000: lexical.PunctuationDensity(marks.Total(), len(words)),
			},
		},
		NGrams: NGrams{
			Bigrams:  ngram.Bigrams(words, e.opts.NGramTopK),
			Trigrams: ngram.Trigrams(words, e.opts.NGramTopK),
		},
		KeyConcepts: e.concepts.Match(words),
		Vocabulary:  vocab,
	}
}
