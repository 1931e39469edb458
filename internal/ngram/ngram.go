package ngram

import (
	"strings"

	"corpus_dashboard/internal/lexical"
)

const DefaultTopK = 30

type Phrase struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Extract counts contiguous n-token windows and returns the topK most
// frequent. Windows that start or end on a stopword are skipped; stopwords
// inside a window are kept.
func Extract(words []string, n, topK int) []Phrase {
	if n <= 0 || len(words) < n {
		return []Phrase{}
	}
	c := lexical.NewCounter()
	for i := 0; i+n <= len(words); i++ {
		if lexical.IsStopWord(words[i]) || lexical.IsStopWord(words[i+n-1]) {
			continue
		}
		c.Add(strings.Join(words[i:i+n], " "))
	}
	top := c.Top(topK)
	out := make([]Phrase, 0, len(top))
	for _, e := range top {
		out = append(out, Phrase{Phrase: e.Key, Count: e.Count})
	}
	return out
}

func Bigrams(words []string, topK int) []Phrase {
	return Extract(words, 2, topK)
}

func Trigrams(words []string, topK int) []Phrase {
	return Extract(words, 3, topK)
}
