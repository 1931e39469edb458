package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Vader scores text with govader, which ships the complete upstream VADER
// lexicon and emoji table. It is the default scorer; Analyzer takes over
// when a lexicon file is configured.
type Vader struct {
	score func(text string) Scores
}

func NewVader() *Vader {
	sia := govader.NewSentimentIntensityAnalyzer()
	return &Vader{score: func(text string) Scores {
		s := sia.PolarityScores(text)
		return Scores{
			Positive: s.Positive,
			Negative: s.Negative,
			Neutral:  s.Neutral,
			Compound: s.Compound,
		}
	}}
}

// Polarity reports blank text, and text govader finds no tokens in, as fully
// neutral.
func (v *Vader) Polarity(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return neutralScores()
	}
	s := v.score(text)
	if s.Positive+s.Negative+s.Neutral == 0 {
		return neutralScores()
	}
	return s
}
