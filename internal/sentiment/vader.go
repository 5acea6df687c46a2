package sentiment

import "github.com/jonreiter/govader"

// scoreWithVader maps VADER's compound polarity (-1..1) onto the
// pipeline's 0-100 scale.
func scoreWithVader(analyzer *govader.SentimentIntensityAnalyzer, plainText string) float64 {
	scores := analyzer.PolarityScores(plainText)
	return clamp(50+scores.Compound*50, 0, 100)
}

// Label buckets a 0-100 sentiment score the same way the upstream
// dashboards do: the middle 20-point band reads as neutral.
func Label(score float64) string {
	switch {
	case score >= 60:
		return "positive"
	case score <= 40:
		return "negative"
	default:
		return "neutral"
	}
}
