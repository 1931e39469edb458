package lexical

import (
	"math"
	"slices"
	"unicode/utf8"
)

// Mean, Median and StdDev use population formulas and return 0 for empty
// input.

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

type SentenceDistribution struct {
	UpTo10 int `json:"0-10"`
	UpTo20 int `json:"11-20"`
	UpTo30 int `json:"21-30"`
	UpTo40 int `json:"31-40"`
	UpTo50 int `json:"41-50"`
	Over50 int `json:"51+"`
}

type SentenceStats struct {
	Count        int                  `json:"count"`
	Mean         float64              `json:"avg_length"`
	Median       float64              `json:"median_length"`
	StdDev       float64              `json:"std_dev"`
	Min          int                  `json:"min_length"`
	Max          int                  `json:"max_length"`
	Distribution SentenceDistribution `json:"distribution"`
}

func Sentences(lengths []int) SentenceStats {
	out := SentenceStats{Count: len(lengths)}
	if len(lengths) == 0 {
		return out
	}
	values := make([]float64, len(lengths))
	out.Min, out.Max = lengths[0], lengths[0]
	for i, l := range lengths {
		values[i] = float64(l)
		out.Min = min(out.Min, l)
		out.Max = max(out.Max, l)
		switch {
		case l <= 10:
			out.Distribution.UpTo10++
		case l <= 20:
			out.Distribution.UpTo20++
		case l <= 30:
			out.Distribution.UpTo30++
		case l <= 40:
			out.Distribution.UpTo40++
		case l <= 50:
			out.Distribution.UpTo50++
		default:
			out.Distribution.Over50++
		}
	}
	out.Mean = Mean(values)
	out.Median = Median(values)
	out.StdDev = StdDev(values)
	return out
}

type WordLengthDistribution struct {
	From1To3   int `json:"1-3"`
	From4To6   int `json:"4-6"`
	From7To9   int `json:"7-9"`
	From10To12 int `json:"10-12"`
	Over12     int `json:"13+"`
}

type WordLength struct {
	Average      float64                `json:"average"`
	Distribution WordLengthDistribution `json:"distribution"`
}

func WordLengths(words []string) WordLength {
	var out WordLength
	if len(words) == 0 {
		return out
	}
	total := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		total += n
		switch {
		case n <= 3:
			out.Distribution.From1To3++
		case n <= 6:
			out.Distribution.From4To6++
		case n <= 9:
			out.Distribution.From7To9++
		case n <= 12:
			out.Distribution.From10To12++
		default:
			out.Distribution.Over12++
		}
	}
	out.Average = float64(total) / float64(len(words))
	return out
}

// PunctuationDensity is marks per 1000 words, 0 when there are no words.
func PunctuationDensity(marks, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(marks) / float64(words) * 1000
}
