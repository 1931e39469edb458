package compare

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTooFewTexts   = errors.New("comparison needs at least two texts")
	ErrUnknownText   = errors.New("unknown text id")
	ErrDuplicateText = errors.New("duplicate text id")
	ErrUnknownMetric = errors.New("unknown style metric")
	ErrNoValues      = errors.New("metric undefined for every text")
)

// Set is the distinct vocabulary of one text.
type Set map[string]struct{}

func NewSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Named pairs a text id with its vocabulary set.
type Named struct {
	ID    string
	Words Set
}

type Overlap struct {
	Text1           string  `json:"text1"`
	Text2           string  `json:"text2"`
	SharedWords     int     `json:"shared_words"`
	UniqueToText1   int     `json:"unique_to_text1"`
	UniqueToText2   int     `json:"unique_to_text2"`
	UnionWords      int     `json:"union_words"`
	Jaccard         float64 `json:"jaccard_similarity"`
	OverlapPercent1 float64 `json:"overlap_percentage_text1"`
	OverlapPercent2 float64 `json:"overlap_percentage_text2"`
}

// PairwiseOverlap compares two vocabulary sets. Empty sets give zero
// similarity and zero overlap rather than an error.
func PairwiseOverlap(a, b Named) Overlap {
	small, large := a.Words, b.Words
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for w := range small {
		if _, ok := large[w]; ok {
			shared++
		}
	}
	union := len(a.Words) + len(b.Words) - shared

	return Overlap{
		Text1:           a.ID,
		Text2:           b.ID,
		SharedWords:     shared,
		UniqueToText1:   len(a.Words) - shared,
		UniqueToText2:   len(b.Words) - shared,
		UnionWords:      union,
		Jaccard:         ratio(shared, union),
		OverlapPercent1: ratio(shared, len(a.Words)) * 100,
		OverlapPercent2: ratio(shared, len(b.Words)) * 100,
	}
}

// Jaccard is |A∩B| / |A∪B|, 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	return PairwiseOverlap(Named{Words: a}, Named{Words: b}).Jaccard
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkIDs(texts []Named) error {
	if len(texts) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewTexts, len(texts))
	}
	seen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateText, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
