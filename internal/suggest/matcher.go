package suggest

import (
	"math"
	"strings"
	"unicode/utf8"

	"tagsort/internal/config"
	"tagsort/internal/errors"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher scores how well candidate matches query. Scores at or below zero
// mean no match; identical strings get the highest score the matcher gives.
type Matcher interface {
	Score(query, candidate string) float64
}

// MatcherFunc adapts a plain function to Matcher
type MatcherFunc func(query, candidate string) float64

// Score calls f
func (f MatcherFunc) Score(query, candidate string) float64 {
	return f(query, candidate)
}

// MatcherFor returns the matcher registered under name
func MatcherFor(name string) (Matcher, error) {
	switch name {
	case config.MatcherHybrid, "":
		return HybridMatcher{}, nil
	case config.MatcherTrigram:
		return TrigramMatcher{}, nil
	case config.MatcherSubsequence:
		return SubsequenceMatcher{}, nil
	default:
		return nil, errors.NewConfigError("unknown matcher", name, errors.InvalidConfig, nil)
	}
}

// Normalize folds case and unicode compatibility forms so "Ｌｉｎｕｘ" and
// "linux" compare equal
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

// TrigramMatcher scores the share of the candidate's padded trigrams that
// also occur in the query
type TrigramMatcher struct{}

// Score returns a value in [0, 1]; 1 for identical strings
func (TrigramMatcher) Score(query, candidate string) float64 {
	candidateGrams := trigrams(Normalize(candidate))
	if len(candidateGrams) == 0 {
		return 0
	}

	queryGrams := make(map[string]struct{})
	for _, g := range trigrams(Normalize(query)) {
		queryGrams[g] = struct{}{}
	}

	matches := 0
	for _, g := range candidateGrams {
		if _, ok := queryGrams[g]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(candidateGrams))
}

// trigrams pads s with two leading spaces and one trailing space and returns
// every three-rune window, len(s)+1 of them
func trigrams(s string) []string {
	if s == "" {
		return nil
	}
	runes := []rune("  " + s + " ")
	grams := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+3]))
	}
	return grams
}

// HybridMatcher adds to the trigram score a bonus for candidates that contain
// the query as a subsequence, larger the fewer characters separate them
type HybridMatcher struct{}

// Score returns a value in [0, 2]; 2 only for strings equal after normalization
func (HybridMatcher) Score(query, candidate string) float64 {
	score := TrigramMatcher{}.Score(query, candidate)
	if distance := fuzzysearch.RankMatchNormalizedFold(Normalize(query), Normalize(candidate)); distance >= 0 {
		score += 1 / float64(1+distance)
	}
	return score
}

// minEditSimilarity is the lowest edit similarity SubsequenceMatcher keeps
// when the query is not a subsequence of the candidate
const minEditSimilarity = 0.5

// SubsequenceMatcher ranks with sahilm/fuzzy, which rewards consecutive runs,
// word starts and early first matches. Queries that are not a subsequence,
// such as transpositions or an extra letter, fall back to edit similarity.
type SubsequenceMatcher struct{}

// Score returns a value in (1, 2) for subsequence matches, in
// [minEditSimilarity, 1) for near misses and 0 otherwise
func (SubsequenceMatcher) Score(query, candidate string) float64 {
	q := Normalize(query)
	if q == "" {
		return 0
	}
	c := Normalize(candidate)
	matches := fuzzy.Find(q, []string{c})
	if len(matches) == 0 {
		return editSimilarity(q, c)
	}
	// Squash the unbounded score into (1, 2) keeping its order
	s := float64(matches[0].Score)
	return 1.5 + s/(2*(1+math.Abs(s)))
}

// editSimilarity is 1 minus the Levenshtein distance over the longer length,
// dropped to 0 below minEditSimilarity. Strings sharing no rune score 0.
func editSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	sim := 1 - float64(fuzzysearch.LevenshteinDistance(a, b))/float64(longest)
	if sim < minEditSimilarity {
		return 0
	}
	return sim
}
