package compare

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus_dashboard/internal/analysis"
	"corpus_dashboard/internal/readability"
)

func named(id string, words ...string) Named {
	return Named{ID: id, Words: NewSet(words)}
}

func TestPairwiseOverlapScenario(t *testing.T) {
	a := named("a", "power", "life", "will")
	b := named("b", "power", "life", "truth")

	o := PairwiseOverlap(a, b)
	assert.Equal(t, 2, o.SharedWords)
	assert.Equal(t, 4, o.UnionWords)
	assert.Equal(t, 1, o.UniqueToText1)
	assert.Equal(t, 1, o.UniqueToText2)
	assert.InDelta(t, 0.5, o.Jaccard, 1e-12)
	assert.InDelta(t, 66.67, o.OverlapPercent1, 0.005)
	assert.InDelta(t, 66.67, o.OverlapPercent2, 0.005)
}

func TestPairwiseOverlapProperties(t *testing.T) {
	a := named("a", "god", "is", "dead", "and", "we", "killed", "him")
	b := named("b", "we", "are", "unknown", "to", "ourselves", "god")

	ab, ba := PairwiseOverlap(a, b), PairwiseOverlap(b, a)
	assert.Equal(t, ab.Jaccard, ba.Jaccard)
	assert.Equal(t, len(a.Words), ab.SharedWords+ab.UniqueToText1)
	assert.Equal(t, len(b.Words), ab.SharedWords+ab.UniqueToText2)
	assert.Equal(t, 1.0, Jaccard(a.Words, a.Words))
}

func TestPairwiseOverlapEmpty(t *testing.T) {
	o := PairwiseOverlap(named("a"), named("b", "x"))
	assert.Zero(t, o.Jaccard)
	assert.Zero(t, o.OverlapPercent1)
	assert.Zero(t, o.OverlapPercent2)
	assert.Zero(t, Jaccard(Set{}, Set{}))
}

func threeTexts() []Named {
	return []Named{
		named("t1", "power", "life", "will"),
		named("t2", "power", "life", "truth"),
		named("t3", "eternal", "recurrence"),
	}
}

func TestSimilarityMatrix(t *testing.T) {
	c, err := SimilarityMatrix(threeTexts(), nil)
	require.NoError(t, err)
	require.Len(t, c.Pairs, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, c.Matrix.IDs())

	for _, a := range c.Matrix.IDs() {
		for _, b := range c.Matrix.IDs() {
			ab, err := c.Matrix.Lookup(a, b)
			require.NoError(t, err)
			ba, err := c.Matrix.Lookup(b, a)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
			if a == b {
				assert.Equal(t, 1.0, ab)
			}
		}
	}
	v, _ := c.Matrix.Lookup("t1", "t2")
	assert.InDelta(t, 0.5, v, 1e-12)
	v, _ = c.Matrix.Lookup("t1", "t3")
	assert.Zero(t, v)
}

func TestSimilarityMatrixConcurrentRunnerMatchesSequential(t *testing.T) {
	parallel := func(n int, fn func(i int)) {
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				fn(i)
			}()
		}
		wg.Wait()
	}
	seq, err := SimilarityMatrix(threeTexts(), nil)
	require.NoError(t, err)
	par, err := SimilarityMatrix(threeTexts(), parallel)
	require.NoError(t, err)
	assert.Equal(t, seq.Pairs, par.Pairs)
}

func TestSimilarityMatrixErrors(t *testing.T) {
	_, err := SimilarityMatrix([]Named{named("only")}, nil)
	assert.True(t, errors.Is(err, ErrTooFewTexts))

	_, err = SimilarityMatrix([]Named{named("a"), named("a")}, nil)
	assert.True(t, errors.Is(err, ErrDuplicateText))

	c, err := SimilarityMatrix(threeTexts(), nil)
	require.NoError(t, err)
	_, err = c.Matrix.Lookup("t1", "missing")
	assert.True(t, errors.Is(err, ErrUnknownText))
}

func TestComparisonPairOrientation(t *testing.T) {
	texts := []Named{named("a", "x", "y", "z"), named("b", "x")}
	c, err := SimilarityMatrix(texts, nil)
	require.NoError(t, err)

	ab, err := c.Pair("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, ab.UniqueToText1)

	ba, err := c.Pair("b", "a")
	require.NoError(t, err)
	assert.Equal(t, "b", ba.Text1)
	assert.Equal(t, 0, ba.UniqueToText1)
	assert.Equal(t, 100.0, ba.OverlapPercent1)

	aa, err := c.Pair("a", "a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, aa.Jaccard)
	assert.Equal(t, 3, aa.SharedWords)

	_, err = c.Pair("a", "nope")
	assert.True(t, errors.Is(err, ErrUnknownText))
}

func TestMatrixJSONRoundTrip(t *testing.T) {
	c, err := SimilarityMatrix(threeTexts(), nil)
	require.NoError(t, err)

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	var decoded Comparison
	require.NoError(t, json.Unmarshal(raw, &decoded))

	v, err := decoded.Matrix.Lookup("t2", "t1")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
	assert.Len(t, decoded.Pairs, 3)
}

func ptr(v float64) *float64 { return &v }

func styled(id string, avgSentence float64, flesch *float64, compound float64) analysis.TextAnalysis {
	var ta analysis.TextAnalysis
	ta.ID = id
	ta.StyleMetrics.Sentences.Mean = avgSentence
	ta.StyleMetrics.Readability = readability.Scores{FleschReadingEase: flesch}
	ta.Sentiment.Vader.Compound = compound
	ta.Sentiment.Vader.Neutral = 1
	return ta
}

func TestStyleDelta(t *testing.T) {
	texts := []analysis.TextAnalysis{
		styled("a", 10, ptr(60), 0.2),
		styled("b", 30, nil, -0.4),
		styled("c", 20, ptr(40), 0.2),
	}

	d, err := StyleDelta(texts, AvgSentenceLength)
	require.NoError(t, err)
	assert.Equal(t, "avg_sentence_length", d.Metric)
	assert.Equal(t, 3, d.Count)
	assert.Equal(t, 10.0, d.Min)
	assert.Equal(t, "a", d.MinText)
	assert.Equal(t, 30.0, d.Max)
	assert.Equal(t, "b", d.MaxText)
	assert.Equal(t, 20.0, d.Range)
	assert.InDelta(t, 20.0, d.Mean, 1e-12)
	assert.InDelta(t, 8.16496580927726, d.StdDev, 1e-9)

	fl, err := StyleDelta(texts, FleschReadingEase)
	require.NoError(t, err)
	assert.Equal(t, 2, fl.Count)
	assert.Equal(t, "c", fl.MinText)
	assert.Equal(t, "a", fl.MaxText)
	assert.InDelta(t, 10.0, fl.StdDev, 1e-12)

	cp, err := StyleDelta(texts, SentimentCompound)
	require.NoError(t, err)
	assert.Equal(t, "a", cp.MaxText, "ties go to the earliest text")
}

func TestStyleDeltaErrors(t *testing.T) {
	texts := []analysis.TextAnalysis{styled("a", 1, nil, 0), styled("b", 2, nil, 0)}

	_, err := StyleDelta(texts, GunningFog)
	assert.True(t, errors.Is(err, ErrNoValues))

	_, err = StyleDelta(texts[:1], AvgSentenceLength)
	assert.True(t, errors.Is(err, ErrTooFewTexts))

	_, err = StyleDelta(texts, Metric(99))
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics() {
		got, err := ParseMetric(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMetric("vibes")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestSummaries(t *testing.T) {
	texts := []analysis.TextAnalysis{
		styled("a", 10, nil, 0.5),
		styled("b", 14, nil, -0.5),
	}

	sent, err := SummarizeSentiment(texts)
	require.NoError(t, err)
	require.NotNil(t, sent.Compound)
	assert.Equal(t, 1.0, sent.Compound.Range)
	assert.Equal(t, 1.0, sent.Neutral.Mean)

	style, err := SummarizeStyle(texts)
	assert.True(t, errors.Is(err, ErrNoValues))
	assert.Nil(t, style.FleschReadingEase)
	require.NotNil(t, style.SentenceLength)
	assert.Equal(t, 12.0, style.SentenceLength.Mean)
}
