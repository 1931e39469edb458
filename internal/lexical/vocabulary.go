package lexical

import (
	"math"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// Vocabulary is the frequency table of one text's word tokens.
type Vocabulary struct {
	counter *Counter
}

func BuildVocabulary(words []string) Vocabulary {
	c := NewCounter()
	for _, w := range words {
		c.Add(w)
	}
	return Vocabulary{counter: c}
}

func (v Vocabulary) Unique() int {
	if v.counter == nil {
		return 0
	}
	return v.counter.Len()
}

func (v Vocabulary) Total() int {
	if v.counter == nil {
		return 0
	}
	return v.counter.Total()
}

func (v Vocabulary) Frequency(word string) int {
	if v.counter == nil {
		return 0
	}
	return v.counter.Count(word)
}

// Words returns the unique words in first occurrence order.
func (v Vocabulary) Words() []string {
	if v.counter == nil {
		return nil
	}
	return append([]string(nil), v.counter.order...)
}

// Set returns the unique words as a set.
func (v Vocabulary) Set() map[string]struct{} {
	out := make(map[string]struct{}, v.Unique())
	for _, w := range v.Words() {
		out[w] = struct{}{}
	}
	return out
}

// TypeTokenRatio is unique/total, 0 for an empty vocabulary.
func (v Vocabulary) TypeTokenRatio() float64 {
	if v.Total() == 0 {
		return 0
	}
	return float64(v.Unique()) / float64(v.Total())
}

// LexicalDiversity is unique/sqrt(total), which is steadier than TTR on long
// texts. 0 for an empty vocabulary.
func (v Vocabulary) LexicalDiversity() float64 {
	if v.Total() == 0 {
		return 0
	}
	return float64(v.Unique()) / math.Sqrt(float64(v.Total()))
}

func IsStopWord(w string) bool {
	return english.IsStopWord(w)
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type BagOfWords struct {
	Top                []WordCount `json:"top_100"`
	TotalVocabulary    int         `json:"total_vocabulary"`
	TotalWordsAnalyzed int         `json:"total_words_analyzed"`
}

// BuildBagOfWords ranks content words: stopwords and words of two letters or
// fewer are dropped before counting.
func BuildBagOfWords(words []string, topK int) BagOfWords {
	c := NewCounter()
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 || IsStopWord(w) {
			continue
		}
		c.Add(w)
	}
	top := c.Top(topK)
	out := BagOfWords{
		Top:                make([]WordCount, 0, len(top)),
		TotalVocabulary:    c.Len(),
		TotalWordsAnalyzed: c.Total(),
	}
	for _, e := range top {
		out.Top = append(out.Top, WordCount{Word: e.Key, Count: e.Count})
	}
	return out
}
