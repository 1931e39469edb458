package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus_dashboard/internal/ingest"
	"corpus_dashboard/internal/ngram"
	"corpus_dashboard/internal/sentiment"
)

func newEngine() *Engine {
	return NewEngine(sentiment.NewVader(), ngram.DefaultDictionary(), Options{})
}

func TestAnalyzePowerIsLife(t *testing.T) {
	ta := newEngine().Analyze(ingest.Source{ID: "p", Title: "P", Filename: "p.txt", Text: "Power is life."})

	assert.Equal(t, 3, ta.WordCount)
	assert.Equal(t, 3, ta.UniqueWords)
	assert.Equal(t, 1, ta.StyleMetrics.Sentences.Count)
	assert.Equal(t, 1.0, ta.StyleMetrics.Vocabulary.TypeTokenRatio)
	assert.Equal(t, 1, ta.StyleMetrics.Punctuation.Period)

	fog := ta.StyleMetrics.Readability.GunningFog
	require.NotNil(t, fog)
	assert.InDelta(t, 1.2, *fog, 1e-9)
	assert.Equal(t, sentiment.Label(ta.Sentiment.Vader.Compound), ta.Sentiment.Label)
}

func TestAnalyzeEmptyText(t *testing.T) {
	ta := newEngine().Analyze(ingest.Source{ID: "e"})

	assert.Zero(t, ta.WordCount)
	assert.Zero(t, ta.StyleMetrics.Vocabulary.TypeTokenRatio)
	assert.False(t, ta.StyleMetrics.Readability.Defined())
	assert.Equal(t, 1.0, ta.Sentiment.Vader.Neutral)
	assert.Equal(t, "Neutral", ta.Sentiment.Label)
	assert.Empty(t, ta.KeyConcepts)

	raw, err := json.Marshal(ta)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"flesch_reading_ease":null`)
	assert.NotContains(t, string(raw), "NaN")
}

func TestAnalyzeConceptsAndNGrams(t *testing.T) {
	text := strings.Repeat("The will to power is the eternal recurrence of the same. ", 3) +
		"God is dead. The Übermensch laughs."
	ta := newEngine().Analyze(ingest.Source{ID: "z", Text: text})

	require.NotEmpty(t, ta.KeyConcepts)
	assert.Equal(t, "will to power", ta.KeyConcepts[0].Term)
	assert.Equal(t, 3, ta.KeyConcepts[0].Count)

	require.NotEmpty(t, ta.NGrams.Bigrams)
	assert.Equal(t, ngram.Phrase{Phrase: "eternal recurrence", Count: 3}, ta.NGrams.Bigrams[0])
	assert.LessOrEqual(t, len(ta.BagOfWords.Top), DefaultBagOfWordsTopK)
}

func TestAnalyzeJSONShape(t *testing.T) {
	ta := newEngine().Analyze(ingest.Source{ID: "s", Title: "S", Filename: "s.txt", Text: "Good. Bad? Yes!"})
	raw, err := json.Marshal(ta)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"id", "title", "filename", "word_count", "unique_words", "bag_of_words", "sentiment", "style_metrics", "ngrams", "key_concepts"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "translator")

	style := doc["style_metrics"].(map[string]any)
	punct := style["punctuation"].(map[string]any)
	assert.Contains(t, punct, "density_per_1000")
	assert.Contains(t, punct, "period")
	assert.Contains(t, doc["sentiment"].(map[string]any), "vader")
}

func TestAnalyzeContractionsCountStems(t *testing.T) {
	ta := newEngine().Analyze(ingest.Source{ID: "c", Text: "Man's will isn't God's will."})
	assert.Equal(t, 5, ta.WordCount)
	assert.Equal(t, 4, ta.UniqueWords)
	assert.Equal(t, 1, ta.Vocabulary.Frequency("god"))
	assert.Zero(t, ta.Vocabulary.Frequency("s"))
}
