package readability

import "strings"

// Counts are the raw inputs to every formula in this package.
type Counts struct {
	Sentences    int
	Words        int
	Syllables    int
	ComplexWords int
}

// Scores are nil when the text has no sentences or no words, which
// serializes as JSON null.
type Scores struct {
	FleschReadingEase  *float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade *float64 `json:"flesch_kincaid_grade"`
	GunningFog         *float64 `json:"gunning_fog"`
}

func (s Scores) Defined() bool {
	return s.FleschReadingEase != nil
}

// Count tallies syllables and complex words (three or more syllables) for
// the given lower-cased word tokens.
func Count(sentences int, words []string) Counts {
	c := Counts{Sentences: sentences, Words: len(words)}
	for _, w := range words {
		n := Syllables(w)
		c.Syllables += n
		if n >= 3 {
			c.ComplexWords++
		}
	}
	return c
}

func Compute(c Counts) Scores {
	if c.Sentences <= 0 || c.Words <= 0 {
		return Scores{}
	}
	wps := float64(c.Words) / float64(c.Sentences)
	spw := float64(c.Syllables) / float64(c.Words)
	complexRatio := float64(c.ComplexWords) / float64(c.Words)

	ease := 206.835 - 1.015*wps - 84.6*spw
	grade := 0.39*wps + 11.8*spw - 15.59
	fog := 0.4 * (wps + 100*complexRatio)
	return Scores{
		FleschReadingEase:  &ease,
		FleschKincaidGrade: &grade,
		GunningFog:         &fog,
	}
}

// Syllables estimates the syllable count of one word by counting vowel
// groups. A trailing silent "e" is dropped unless the word ends in a
// consonant + "le". Every word with at least one letter has one syllable.
func Syllables(word string) int {
	w := strings.ToLower(word)
	runes := []rune(w)
	if len(runes) == 0 {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range runes {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	n := len(runes)
	if n > 2 && runes[n-1] == 'e' && !isVowel(runes[n-2]) {
		consonantLE := runes[n-2] == 'l' && !isVowel(runes[n-3])
		if !consonantLE && count > 1 {
			count--
		}
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'à', 'á', 'â', 'ä', 'è', 'é', 'ê', 'ë', 'ì', 'í', 'î', 'ï', 'ò', 'ó', 'ô', 'ö', 'ù', 'ú', 'û', 'ü':
		return true
	}
	return false
}
