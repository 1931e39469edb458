package sentiment

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	boosterIncr   = 0.293
	boosterDecr   = -0.293
	capsIncr      = 0.733
	negationScale = -0.74
	normAlpha     = 15.0
)

var negations = setOf(
	"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"ain't", "aren't", "can't", "couldn't", "daren't", "didn't", "doesn't",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"don't", "hadn't", "hasn't", "haven't", "isn't", "mightn't", "mustn't",
	"neednt", "needn't", "never", "none", "nope", "nor", "not", "nothing", "nowhere",
	"oughtnt", "shant", "shouldnt", "uhuh", "wasnt", "werent",
	"oughtn't", "shan't", "shouldn't", "uh-uh", "wasn't", "weren't",
	"without", "wont", "wouldnt", "won't", "wouldn't", "rarely", "seldom", "despite",
)

var boosters = map[string]float64{
	"absolutely": boosterIncr, "amazingly": boosterIncr, "awfully": boosterIncr,
	"completely": boosterIncr, "considerable": boosterIncr, "considerably": boosterIncr,
	"decidedly": boosterIncr, "deeply": boosterIncr, "enormous": boosterIncr,
	"enormously": boosterIncr, "entirely": boosterIncr, "especially": boosterIncr,
	"exceptional": boosterIncr, "exceptionally": boosterIncr, "extreme": boosterIncr,
	"extremely": boosterIncr, "fabulously": boosterIncr, "fully": boosterIncr,
	"greatly": boosterIncr, "highly": boosterIncr, "hugely": boosterIncr,
	"incredible": boosterIncr, "incredibly": boosterIncr, "intensely": boosterIncr,
	"major": boosterIncr, "majorly": boosterIncr, "more": boosterIncr, "most": boosterIncr,
	"particularly": boosterIncr, "purely": boosterIncr, "quite": boosterIncr,
	"really": boosterIncr, "remarkably": boosterIncr, "so": boosterIncr,
	"substantially": boosterIncr, "thoroughly": boosterIncr, "total": boosterIncr,
	"totally": boosterIncr, "tremendous": boosterIncr, "tremendously": boosterIncr,
	"uber": boosterIncr, "unbelievably": boosterIncr, "unusually": boosterIncr,
	"utter": boosterIncr, "utterly": boosterIncr, "very": boosterIncr,

	"almost": boosterDecr, "barely": boosterDecr, "hardly": boosterDecr,
	"just enough": boosterDecr, "kind of": boosterDecr, "kinda": boosterDecr,
	"kindof": boosterDecr, "kind-of": boosterDecr, "less": boosterDecr,
	"little": boosterDecr, "marginal": boosterDecr, "marginally": boosterDecr,
	"occasional": boosterDecr, "occasionally": boosterDecr, "partly": boosterDecr,
	"scarce": boosterDecr, "scarcely": boosterDecr, "slight": boosterDecr,
	"slightly": boosterDecr, "somewhat": boosterDecr, "sort of": boosterDecr,
	"sorta": boosterDecr, "sortof": boosterDecr, "sort-of": boosterDecr,
}

var idioms = map[string]float64{
	"the shit": 3, "the bomb": 3, "bad ass": 1.5, "badass": 1.5, "bus stop": 0.0,
	"yeah right": -2, "kiss of death": -1.5, "to die for": 3,
	"beating heart": 3.1, "broken heart": -2.9,
}

// Analyzer scores text with the VADER rule set over a lexicon supplied by
// the caller.
type Analyzer struct {
	lexicon Lexicon
}

func NewAnalyzer(lex Lexicon) *Analyzer {
	return &Analyzer{lexicon: lex}
}

// Polarity scores one passage. Text without tokens is reported as fully
// neutral.
func (a *Analyzer) Polarity(text string) Scores {
	tokens := splitTokens(text)
	if len(tokens) == 0 {
		return neutralScores()
	}
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}
	capDiff := allCapsDifferential(tokens)

	valences := make([]float64, 0, len(tokens))
	for i := range tokens {
		if _, ok := boosters[lower[i]]; ok {
			valences = append(valences, 0)
			continue
		}
		if i < len(tokens)-1 && lower[i] == "kind" && lower[i+1] == "of" {
			valences = append(valences, 0)
			continue
		}
		valences = append(valences, a.valence(tokens, lower, i, capDiff))
	}
	valences = butCheck(lower, valences)
	return scoreValences(valences, text)
}

func (a *Analyzer) valence(tokens, lower []string, i int, capDiff bool) float64 {
	base, ok := a.lexicon.Valence(lower[i])
	if !ok {
		return 0
	}
	v := base
	if lower[i] == "no" && i != len(tokens)-1 && a.lexicon.Has(lower[i+1]) {
		v = 0
	}
	if (i > 0 && lower[i-1] == "no") ||
		(i > 1 && lower[i-2] == "no") ||
		(i > 2 && lower[i-3] == "no" && (lower[i-1] == "or" || lower[i-1] == "nor")) {
		v = base * negationScale
	}
	if capDiff && isUpper(tokens[i]) {
		if v > 0 {
			v += capsIncr
		} else {
			v -= capsIncr
		}
	}

	for start := 0; start < 3; start++ {
		if i <= start || a.lexicon.Has(lower[i-(start+1)]) {
			continue
		}
		s := scalarIncDec(tokens[i-(start+1)], v, capDiff)
		if start == 1 && s != 0 {
			s *= 0.95
		}
		if start == 2 && s != 0 {
			s *= 0.9
		}
		v += s
		v = negationCheck(v, lower, start, i)
		if start == 2 {
			v = idiomCheck(v, lower, i)
		}
	}
	return a.leastCheck(v, lower, i)
}

func (a *Analyzer) leastCheck(v float64, lower []string, i int) float64 {
	if i > 1 && !a.lexicon.Has(lower[i-1]) && lower[i-1] == "least" {
		if lower[i-2] != "at" && lower[i-2] != "very" {
			v *= negationScale
		}
	} else if i > 0 && !a.lexicon.Has(lower[i-1]) && lower[i-1] == "least" {
		v *= negationScale
	}
	return v
}

func negationCheck(v float64, lower []string, start, i int) float64 {
	switch start {
	case 0:
		if negated(lower[i-1]) {
			v *= negationScale
		}
	case 1:
		switch {
		case lower[i-2] == "never" && (lower[i-1] == "so" || lower[i-1] == "this"):
			v *= 1.25
		case lower[i-2] == "without" && lower[i-1] == "doubt":
		case negated(lower[i-2]):
			v *= negationScale
		}
	case 2:
		switch {
		case (lower[i-3] == "never" && (lower[i-2] == "so" || lower[i-2] == "this")) ||
			lower[i-1] == "so" || lower[i-1] == "this":
			v *= 1.25
		case lower[i-3] == "without" && (lower[i-2] == "doubt" || lower[i-1] == "doubt"):
		case negated(lower[i-3]):
			v *= negationScale
		}
	}
	return v
}

func idiomCheck(v float64, lower []string, i int) float64 {
	oneZero := lower[i-1] + " " + lower[i]
	twoOneZero := lower[i-2] + " " + lower[i-1] + " " + lower[i]
	twoOne := lower[i-2] + " " + lower[i-1]
	threeTwoOne := lower[i-3] + " " + lower[i-2] + " " + lower[i-1]
	threeTwo := lower[i-3] + " " + lower[i-2]
	for _, seq := range []string{oneZero, twoOneZero, twoOne, threeTwoOne, threeTwo} {
		if iv, ok := idioms[seq]; ok {
			v = iv
			break
		}
	}
	if len(lower)-1 > i {
		if iv, ok := idioms[lower[i]+" "+lower[i+1]]; ok {
			v = iv
		}
	}
	if len(lower)-1 > i+1 {
		if iv, ok := idioms[lower[i]+" "+lower[i+1]+" "+lower[i+2]]; ok {
			v = iv
		}
	}
	for _, seq := range []string{threeTwoOne, threeTwo, twoOne} {
		if b, ok := boosters[seq]; ok {
			v += b
		}
	}
	return v
}

// butCheck halves valences before the first "but" and boosts those after it.
func butCheck(lower []string, valences []float64) []float64 {
	bi := -1
	for i, w := range lower {
		if w == "but" {
			bi = i
			break
		}
	}
	if bi < 0 {
		return valences
	}
	for i, v := range valences {
		switch {
		case i < bi:
			valences[i] = v * 0.5
		case i > bi:
			valences[i] = v * 1.5
		}
	}
	return valences
}

func scalarIncDec(word string, v float64, capDiff bool) float64 {
	scalar, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if v < 0 {
		scalar *= -1
	}
	if capDiff && isUpper(word) {
		if v > 0 {
			scalar += capsIncr
		} else {
			scalar -= capsIncr
		}
	}
	return scalar
}

func negated(word string) bool {
	if _, ok := negations[word]; ok {
		return true
	}
	return strings.Contains(word, "n't")
}

func scoreValences(valences []float64, text string) Scores {
	sum := 0.0
	for _, v := range valences {
		sum += v
	}
	emphasis := punctuationEmphasis(text)
	if sum > 0 {
		sum += emphasis
	} else if sum < 0 {
		sum -= emphasis
	}

	var posSum, negSum float64
	neutral := 0
	for _, v := range valences {
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += v - 1
		default:
			neutral++
		}
	}
	if posSum > math.Abs(negSum) {
		posSum += emphasis
	} else if posSum < math.Abs(negSum) {
		negSum -= emphasis
	}
	total := posSum + math.Abs(negSum) + float64(neutral)
	return Scores{
		Positive: math.Abs(posSum / total),
		Negative: math.Abs(negSum / total),
		Neutral:  math.Abs(float64(neutral) / total),
		Compound: Normalize(sum),
	}
}

// Normalize maps an unbounded valence sum into [-1, 1].
func Normalize(sum float64) float64 {
	n := sum / math.Sqrt(sum*sum+normAlpha)
	return math.Max(-1, math.Min(1, n))
}

func punctuationEmphasis(text string) float64 {
	ep := min(strings.Count(text, "!"), 4)
	amp := float64(ep) * 0.292
	qm := strings.Count(text, "?")
	if qm > 1 {
		if qm <= 3 {
			amp += float64(qm) * 0.18
		} else {
			amp += 0.96
		}
	}
	return amp
}

// splitTokens splits on whitespace and strips surrounding ASCII punctuation
// unless that would leave two characters or fewer, which keeps emoticons.
func splitTokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		stripped := strings.TrimFunc(f, isASCIIPunct)
		if utf8.RuneCountInString(stripped) <= 2 {
			out = append(out, f)
			continue
		}
		out = append(out, stripped)
	}
	return out
}

func isASCIIPunct(r rune) bool {
	return r < utf8.RuneSelf && unicode.IsPunct(r) || strings.ContainsRune("$+<=>^`|~", r)
}

func allCapsDifferential(tokens []string) bool {
	caps := 0
	for _, t := range tokens {
		if isUpper(t) {
			caps++
		}
	}
	diff := len(tokens) - caps
	return diff > 0 && diff < len(tokens)
}

// isUpper matches str.isupper: at least one cased letter and no lower-case
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func setOf(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
