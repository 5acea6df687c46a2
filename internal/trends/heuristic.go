package trends

import "strings"

var risingTerms = []string{
	"new", "trending", "rising", "growing", "increasing", "surging",
	"popular", "viral", "hot", "buzz", "spike", "demand", "adoption",
	"launch", "released", "update", "breakout", "momentum",
}

var decliningTerms = []string{
	"decline", "decreasing", "dropping", "falling", "downtrend",
	"obsolete", "legacy", "outdated", "stagnant", "unpopular", "saturated",
}

// estimateFromText is the dependency-free fallback used when no trends
// API is configured. It maps the rising/declining vocabulary ratio onto
// a 20-80 band and adds a breadth bonus for distinct keywords; the
// clamp runs after the bonus, so a strong base plus a broad keyword set
// can saturate at 100 but never exceed it.
func estimateFromText(text string, keywords []string) float64 {
	if text == "" && len(keywords) == 0 {
		return 50.0
	}

	lower := strings.ToLower(text)

	var rising, declining int
	for _, term := range risingTerms {
		if strings.Contains(lower, term) {
			rising++
		}
	}
	for _, term := range decliningTerms {
		if strings.Contains(lower, term) {
			declining++
		}
	}

	base := 50.0
	if rising > 0 || declining > 0 {
		ratio := float64(rising) / float64(rising+declining)
		base = 20 + ratio*60
	}

	bonus := float64(distinctKeywords(keywords, 10))
	if bonus > 10 {
		bonus = 10
	}

	score := base + bonus
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func distinctKeywords(keywords []string, limit int) int {
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		seen[kw] = struct{}{}
	}
	return len(seen)
}
