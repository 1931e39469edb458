package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByRunesCoversText(t *testing.T) {
	text := strings.Repeat("Gott ist tot. ", 2000)
	total := len([]rune(text))

	segments := ByRunes(text, 10000)
	require.Len(t, segments, 3)

	covered := make([]bool, total)
	var rebuilt strings.Builder
	for i, s := range segments {
		require.Equal(t, i, s.Index)
		require.True(t, s.Start >= 0 && s.End <= total && s.Start < s.End, "invalid segment bounds: %+v", s)
		for j := s.Start; j < s.End; j++ {
			require.False(t, covered[j], "rune %d covered twice", j)
			covered[j] = true
		}
		rebuilt.WriteString(s.Text)
	}
	assert.NotContains(t, covered, false, "data loss")
	assert.Equal(t, text, rebuilt.String())
}

func TestByRunesMultibyte(t *testing.T) {
	segments := ByRunes("übermensch", 4)
	require.Len(t, segments, 3)
	assert.Equal(t, "über", segments[0].Text)
}

func TestByRunesEmpty(t *testing.T) {
	assert.Nil(t, ByRunes("", 10))
	assert.Nil(t, ByRunes("abc", 0))
}
