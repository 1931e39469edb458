package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Punctuation holds per-mark counts for one document. Dash counts each em or
// en dash plus each non-overlapping "--"; Parentheses and Quotes count single
// marks, not pairs.
type Punctuation struct {
	Period      int `json:"period"`
	Exclamation int `json:"exclamation"`
	Question    int `json:"question"`
	Semicolon   int `json:"semicolon"`
	Colon       int `json:"colon"`
	Comma       int `json:"comma"`
	Dash        int `json:"dash"`
	Parentheses int `json:"parentheses"`
	Quotes      int `json:"quotes"`
}

func (p Punctuation) Total() int {
	return p.Period + p.Exclamation + p.Question + p.Semicolon + p.Colon +
		p.Comma + p.Dash + p.Parentheses + p.Quotes
}

// Document is the tokenized form of one text. Sentences never contain zero
// words.
type Document struct {
	Sentences   [][]string
	Punctuation Punctuation
}

func (d Document) Words() []string {
	n := 0
	for _, s := range d.Sentences {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range d.Sentences {
		out = append(out, s...)
	}
	return out
}

func (d Document) WordCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s)
	}
	return n
}

func (d Document) SentenceLengths() []int {
	out := make([]int, len(d.Sentences))
	for i, s := range d.Sentences {
		out[i] = len(s)
	}
	return out
}

var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "st": {}, "prof": {}, "rev": {},
	"vol": {}, "vols": {}, "ch": {}, "chap": {}, "cf": {}, "ed": {}, "eds": {},
	"e.g": {}, "i.e": {}, "etc": {}, "viz": {}, "vs": {}, "pp": {},
	"p": {}, "sect": {}, "trans": {}, "jr": {}, "sr": {}, "fig": {}, "ibid": {},
}

// IsAbbreviation reports whether w (without its trailing period) suppresses a
// sentence break.
func IsAbbreviation(w string) bool {
	_, ok := abbreviations[strings.ToLower(w)]
	return ok
}

// Normalize returns text in NFC so composed and decomposed letters compare
// equal after lower-casing.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Words returns the lower-cased word forms of text in order, with the same
// apostrophe handling as Parse.
func Words(text string) []string {
	var out []string
	for _, s := range Parse(text).Sentences {
		out = append(out, s...)
	}
	return out
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// clitics are the contracted endings dropped from a word form, leaving the
// stem ("god's" is "god", "isn't" is "is").
var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// irregular stems left behind by "n't".
var negatedStems = map[string]string{"ca": "can", "wo": "will", "sha": "shall"}

// wordForm removes a trailing clitic from w and then any inner apostrophes,
// so "o'clock" becomes "oclock".
func wordForm(w string) string {
	if !strings.Contains(w, "'") {
		return w
	}
	for _, c := range clitics {
		stem, ok := strings.CutSuffix(w, c)
		if !ok || stem == "" {
			continue
		}
		if c == "n't" {
			if full, irregular := negatedStems[stem]; irregular {
				stem = full
			}
		}
		w = stem
		break
	}
	return strings.ReplaceAll(w, "'", "")
}

// Parse splits text into sentences of lower-cased word tokens and counts
// punctuation marks along the way.
func Parse(text string) Document {
	runes := []rune(Normalize(text))
	doc := Document{}

	var word strings.Builder
	var sentence []string
	// raw run of non-space characters preceding the current rune, used for
	// abbreviation lookups like "e.g" or "Mr".
	var prefix strings.Builder

	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		if w := wordForm(word.String()); w != "" {
			sentence = append(sentence, w)
		}
		word.Reset()
	}
	endSentence := func() {
		flushWord()
		if len(sentence) > 0 {
			doc.Sentences = append(doc.Sentences, sentence)
		}
		sentence = nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsLetter(r) {
			word.WriteRune(unicode.ToLower(r))
			prefix.WriteRune(r)
			continue
		}
		if isApostrophe(r) && word.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
			word.WriteByte('\'')
			prefix.WriteRune(r)
			countMark(&doc.Punctuation, r)
			continue
		}
		flushWord()

		switch r {
		case '.', '!', '?':
			j := i
			for j < len(runes) && isTerminal(runes[j]) {
				countMark(&doc.Punctuation, runes[j])
				j++
			}
			onlyPeriod := j-i == 1 && r == '.'
			before := trimOpeners(prefix.String())
			if boundaryFollows(runes, j) && !(onlyPeriod && IsAbbreviation(before)) {
				endSentence()
			}
			for k := i; k < j; k++ {
				prefix.WriteRune(runes[k])
			}
			i = j - 1
			continue
		case '-':
			if i+1 < len(runes) && runes[i+1] == '-' {
				doc.Punctuation.Dash++
				prefix.WriteString("--")
				i++
				continue
			}
		default:
			countMark(&doc.Punctuation, r)
		}

		if unicode.IsSpace(r) {
			prefix.Reset()
		} else {
			prefix.WriteRune(r)
		}
	}
	endSentence()
	return doc
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// boundaryFollows reports whether position i (just past a terminal run) is
// the end of input, whitespace, or a closing quote or bracket.
func boundaryFollows(runes []rune, i int) bool {
	if i >= len(runes) {
		return true
	}
	r := runes[i]
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '"', '\'', '”', '’', ')', ']':
		return true
	}
	return false
}

func trimOpeners(s string) string {
	return strings.TrimLeft(s, "\"'(“‘[")
}

func countMark(p *Punctuation, r rune) {
	switch r {
	case '.':
		p.Period++
	case '!':
		p.Exclamation++
	case '?':
		p.Question++
	case ';':
		p.Semicolon++
	case ':':
		p.Colon++
	case ',':
		p.Comma++
	case '—', '–':
		p.Dash++
	case '(', ')':
		p.Parentheses++
	case '"', '\'', '“', '”', '‘', '’':
		p.Quotes++
	}
}
