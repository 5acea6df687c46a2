package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedbackText = "The dashboard feature is great. The dashboard loads slowly and the api integration keeps failing. We need a better search filter on the analytics dashboard."

func TestExtract_EmptyInput(t *testing.T) {
	extractor := NewExtractor()

	assert.Empty(t, extractor.Extract("", 10))
	assert.Empty(t, extractor.Extract("   \n\t  ", 10))
}

func TestExtract_RespectsMaxKeywords(t *testing.T) {
	extractor := NewExtractor()

	for _, max := range []int{1, 2, 5, 10, 100} {
		got := extractor.Extract(feedbackText, max)
		assert.LessOrEqual(t, len(got), max, "max=%d", max)
	}
}

func TestExtract_ClampsMaxKeywordsBelowOne(t *testing.T) {
	extractor := NewExtractor()

	got := extractor.Extract(feedbackText, 0)
	assert.LessOrEqual(t, len(got), 1)

	got = extractor.Extract(feedbackText, -3)
	assert.LessOrEqual(t, len(got), 1)
}

func TestExtract_OutputShape(t *testing.T) {
	extractor := NewExtractor()

	got := extractor.Extract(feedbackText, 10)
	require.NotEmpty(t, got)

	seen := make(map[string]struct{})
	for _, kw := range got {
		assert.Equal(t, strings.ToLower(kw), kw, "keywords are lowercase")
		assert.GreaterOrEqual(t, len(kw), 3, "keywords have at least 3 characters")
		assert.False(t, isStopWord(kw), "keyword %q is a stop word", kw)

		_, dup := seen[kw]
		assert.False(t, dup, "keyword %q appears twice", kw)
		seen[kw] = struct{}{}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	extractor := NewExtractor()

	first := extractor.Extract(feedbackText, 10)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, extractor.Extract(feedbackText, 10))
	}
}

func TestRankCandidates_BoostsProductTerms(t *testing.T) {
	text := "snail snail snail dashboard"
	candidates := []string{"snail", "dashboard"}

	// "snail" appears 3 times, "dashboard" once; the +2 product boost
	// makes them tie at 3 and first-seen order breaks the tie.
	ranked := rankCandidates(candidates, text)
	require.Equal(t, []string{"snail", "dashboard"}, ranked)

	// One more mention flips the order.
	text = "snail snail snail dashboard dashboard"
	ranked = rankCandidates(candidates, text)
	require.Equal(t, []string{"dashboard", "snail"}, ranked)
}

func TestRankCandidates_Filters(t *testing.T) {
	text := "ab the 123 api"
	ranked := rankCandidates([]string{"ab", "the", "123", "api"}, text)
	assert.Equal(t, []string{"api"}, ranked)
}

func TestExtractWithRegex(t *testing.T) {
	got := extractWithRegex("Acme rebuilt the Billing dashboard and its api")

	assert.Contains(t, got, "dashboard")
	assert.Contains(t, got, "api")
	assert.Contains(t, got, "acme")
	assert.Contains(t, got, "billing")
}

func TestExtractWithTokenizer(t *testing.T) {
	got := extractWithTokenizer("the authentication dashboard needs better reporting")

	assert.Contains(t, got, "authentication")
	assert.Contains(t, got, "dashboard")
	assert.Contains(t, got, "reporting")
}

func TestExtract_LadderFallsThrough(t *testing.T) {
	failing := Strategy{Name: "failing", Extract: func(string) []string { return nil }}
	regexOnly := Strategy{Name: "regex", Extract: extractWithRegex}
	extractor := NewExtractorWithStrategies([]Strategy{failing, regexOnly})

	got := extractor.Extract("the api dashboard", 10)
	assert.Contains(t, got, "api")
	assert.Contains(t, got, "dashboard")
}
