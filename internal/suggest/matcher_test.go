package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigrams(t *testing.T) {
	assert.Equal(t, []string{"  l", " li", "lin", "in "}, trigrams("lin"))
	assert.Len(t, trigrams("linux"), 6)
	assert.Nil(t, trigrams(""))
}

func TestTrigramScore(t *testing.T) {
	m := TrigramMatcher{}
	assert.Equal(t, 1.0, m.Score("linux", "linux"))
	assert.Equal(t, 1.0, m.Score("LiNuX", "linux"), "case-insensitive")
	assert.InDelta(t, 0.5, m.Score("lin", "linux"), 1e-9)
	assert.Equal(t, 0.0, m.Score("zzz", "linux"))
	assert.Equal(t, 0.0, m.Score("", "linux"))
	assert.Equal(t, 0.0, m.Score("linux", ""))
}

func TestHybridScore(t *testing.T) {
	m := HybridMatcher{}
	identical := m.Score("warframe", "warframe")
	assert.Equal(t, 2.0, identical)

	for _, candidate := range []string{"warfram", "warframes", "wraframe", "war"} {
		assert.Less(t, m.Score("warframe", candidate), identical, candidate)
	}

	// Subsequence without shared trigrams still scores
	assert.Greater(t, m.Score("wfm", "warframe"), 0.0)
	// Transposition keeps some trigrams
	assert.Greater(t, m.Score("lniux", "linux"), 0.0)
	assert.Equal(t, 0.0, m.Score("zzz", "linux"))
}

func TestSubsequenceScore(t *testing.T) {
	m := SubsequenceMatcher{}
	assert.Greater(t, m.Score("lin", "linux"), 0.0)
	assert.Greater(t, m.Score("LIN", "linux"), 0.0)
	assert.Equal(t, 0.0, m.Score("zzz", "linux"))
	assert.Equal(t, 0.0, m.Score("", "linux"))
	assert.Greater(t, m.Score("lin", "linux"), m.Score("lin", "lxixn"), "adjacent matches rank higher")

	// Transpositions and extra letters miss as subsequences but stay close by edits
	assert.InDelta(t, 0.6, m.Score("lniux", "linux"), 1e-9)
	assert.InDelta(t, 5.0/6.0, m.Score("linnux", "linux"), 1e-9)
	assert.Greater(t, m.Score("lin", "linux"), m.Score("linnux", "linux"), "subsequence hits outrank near misses")
	assert.Equal(t, 0.0, m.Score("lniux", "warframe"))
	assert.Equal(t, 0.0, m.Score("linuxes", "lx"), "too many edits")
}

func TestEditSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, editSimilarity("linux", "linux"))
	assert.Equal(t, 0.0, editSimilarity("abc", "xyz"))
	assert.Equal(t, 0.0, editSimilarity("", ""))
	assert.InDelta(t, 0.75, editSimilarity("cats", "cat"), 1e-9)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "linux", Normalize("  LINUX "))
	assert.Equal(t, "linux", Normalize("Ｌｉｎｕｘ"))
	assert.Equal(t, "strasse", Normalize("STRASSE"))
}

func TestMatcherFor(t *testing.T) {
	m, err := MatcherFor("")
	assert.NoError(t, err)
	assert.IsType(t, HybridMatcher{}, m)

	m, err = MatcherFor("subsequence")
	assert.NoError(t, err)
	assert.IsType(t, SubsequenceMatcher{}, m)

	_, err = MatcherFor("soundex")
	assert.Error(t, err)
}
