package sentiment

import "corpus_dashboard/internal/chunk"

// DefaultChunkRunes is the passage size long documents are split into
// before scoring.
const DefaultChunkRunes = 10000

// Scores holds VADER polarity. Positive, Negative and Neutral sum to 1;
// Compound lies in [-1, 1].
type Scores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

func (s Scores) Label() string {
	return Label(s.Compound)
}

func neutralScores() Scores {
	return Scores{Neutral: 1}
}

// Label buckets a compound score into the seven dashboard categories.
func Label(compound float64) string {
	switch {
	case compound >= 0.75:
		return "Very Positive"
	case compound >= 0.5:
		return "Positive"
	case compound >= 0.25:
		return "Moderately Positive"
	case compound >= -0.25:
		return "Neutral"
	case compound >= -0.5:
		return "Moderately Negative"
	case compound >= -0.75:
		return "Negative"
	default:
		return "Very Negative"
	}
}

// Scorer scores one passage of text.
type Scorer interface {
	Polarity(text string) Scores
}

// Document scores a whole text by averaging the scores of fixed-size rune
// chunks. Texts shorter than one chunk are scored in one pass.
func Document(a Scorer, text string, chunkRunes int) Scores {
	if chunkRunes <= 0 {
		chunkRunes = DefaultChunkRunes
	}
	segments := chunk.ByRunes(text, chunkRunes)
	if len(segments) <= 1 {
		return a.Polarity(text)
	}
	var sum Scores
	for _, seg := range segments {
		s := a.Polarity(seg.Text)
		sum.Positive += s.Positive
		sum.Negative += s.Negative
		sum.Neutral += s.Neutral
		sum.Compound += s.Compound
	}
	n := float64(len(segments))
	return Scores{
		Positive: sum.Positive / n,
		Negative: sum.Negative / n,
		Neutral:  sum.Neutral / n,
		Compound: sum.Compound / n,
	}
}
