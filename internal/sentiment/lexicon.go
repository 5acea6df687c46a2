package sentiment

import "strings"

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic",
	"love", "like", "best", "perfect", "awesome", "brilliant",
	"helpful", "useful", "easy", "simple", "clear", "intuitive",
	"improve", "better", "enhance", "upgrade", "benefit",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst", "poor",
	"hate", "dislike", "difficult", "complex", "confusing", "unclear",
	"bug", "error", "issue", "problem", "broken", "fails",
	"missing", "lack", "slow", "crashes", "unstable",
}

// scoreWithLexicon is the dependency-free fallback: count which
// positive and negative words appear in the text and map the positive
// ratio onto a 20-80 band. No matches at all reads as neutral.
func scoreWithLexicon(text string) float64 {
	if text == "" {
		return 50.0
	}
	lower := strings.ToLower(text)

	var positive, negative int
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	if positive == 0 && negative == 0 {
		return 50.0
	}

	ratio := float64(positive) / float64(positive+negative)
	return clamp(20+ratio*60, 0, 100)
}
