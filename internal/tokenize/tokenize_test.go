package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleSentence(t *testing.T) {
	doc := Parse("Power is life.")
	require.Len(t, doc.Sentences, 1)
	assert.Equal(t, []string{"power", "is", "life"}, doc.Sentences[0])
	assert.Equal(t, 3, doc.WordCount())
	assert.Equal(t, 1, doc.Punctuation.Period)
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t  ", "... !!! ??"} {
		doc := Parse(in)
		assert.Empty(t, doc.Sentences, "input %q", in)
		assert.Zero(t, doc.WordCount(), "input %q", in)
	}
}

func TestParseAbbreviationsDoNotSplit(t *testing.T) {
	doc := Parse("Mr. Smith met Dr. Jones, e.g. at noon. They talked!")
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, []string{"mr", "smith", "met", "dr", "jones", "e", "g", "at", "noon"}, doc.Sentences[0])
	assert.Equal(t, []string{"they", "talked"}, doc.Sentences[1])
}

func TestParseTerminalRunsAndQuotes(t *testing.T) {
	doc := Parse(`"Is God dead?!" he asked. Version 3.14 is out`)
	require.Len(t, doc.Sentences, 3)
	assert.Equal(t, []string{"is", "god", "dead"}, doc.Sentences[0])
	assert.Equal(t, []string{"he", "asked"}, doc.Sentences[1])
	assert.Equal(t, []string{"version", "is", "out"}, doc.Sentences[2])
	assert.Equal(t, 1, doc.Punctuation.Question)
	assert.Equal(t, 1, doc.Punctuation.Exclamation)
	assert.Equal(t, 2, doc.Punctuation.Quotes)
}

func TestParsePunctuationCounts(t *testing.T) {
	doc := Parse("One, two; three: four -- five — six (seven) 'eight'.")
	p := doc.Punctuation
	assert.Equal(t, 1, p.Comma)
	assert.Equal(t, 1, p.Semicolon)
	assert.Equal(t, 1, p.Colon)
	assert.Equal(t, 2, p.Dash)
	assert.Equal(t, 2, p.Parentheses)
	assert.Equal(t, 2, p.Quotes)
	assert.Equal(t, 1, p.Period)
	assert.Equal(t, 10, p.Total())
}

func TestNormalizeComposesUmlauts(t *testing.T) {
	decomposed := "U\u0308bermensch"
	assert.Equal(t, []string{"übermensch"}, Words(decomposed))
	assert.Equal(t, Words("Übermensch"), Words(decomposed))
}

func TestParseContractionsKeepStems(t *testing.T) {
	doc := Parse("Man's will isn't God's will. We can't; they won’t.")
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, []string{"man", "will", "is", "god", "will"}, doc.Sentences[0])
	assert.Equal(t, []string{"we", "can", "they", "will"}, doc.Sentences[1])
	assert.Equal(t, 9, doc.WordCount())
	assert.Equal(t, 5, doc.Punctuation.Quotes)

	assert.Equal(t, []string{"at", "oclock", "i", "go"}, Words("At o'clock I'd 'go'"))
}
