package keywords

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

const DEFAULT_MAX_KEYWORDS = 10

// Extractor reduces free text to a ranked set of product and feature
// terms. Extraction runs a ladder of strategies, most capable first;
// the first tier that yields candidates wins, so callers always see
// the same output shape no matter which tier executed.
type Extractor struct {
	strategies []Strategy
}

func NewExtractor() *Extractor {
	return &Extractor{strategies: defaultStrategies()}
}

// NewExtractorWithStrategies overrides the ladder, mainly for tests.
func NewExtractorWithStrategies(strategies []Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

var nonAlphabeticPattern = regexp.MustCompile(`^[^a-zA-Z]+$`)

// Extract returns up to maxKeywords lowercase terms ranked by
// importance. Empty or whitespace-only input yields an empty slice;
// maxKeywords below 1 is clamped to 1.
func (e *Extractor) Extract(text string, maxKeywords int) []string {
	if maxKeywords < 1 {
		maxKeywords = 1
	}
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var candidates []string
	for _, strategy := range e.strategies {
		candidates = strategy.Extract(text)
		if len(candidates) > 0 {
			break
		}
		slog.Debug("[KeywordExtractor] Strategy produced no candidates, trying next",
			slog.String("strategy", strategy.Name))
	}

	ranked := rankCandidates(candidates, text)
	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	return ranked
}

type scoredCandidate struct {
	term       string
	importance int
}

// rankCandidates dedupes in first-seen order, drops terms that are too
// short, stop words, or entirely non-alphabetic, then sorts by an
// importance score: raw substring frequency in the source text plus a
// +2 boost for product-pattern or technical-vocabulary matches. The
// sort is stable so ties keep first-seen order.
func rankCandidates(candidates []string, text string) []string {
	textLower := strings.ToLower(text)

	seen := make(map[string]struct{}, len(candidates))
	var scored []scoredCandidate

	for _, term := range candidates {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}

		if len(term) < 3 {
			continue
		}
		if isStopWord(term) {
			continue
		}
		if nonAlphabeticPattern.MatchString(term) {
			continue
		}

		importance := strings.Count(textLower, term)
		if matchesProductPattern(term) || isTechnicalTerm(term) {
			importance += 2
		}
		scored = append(scored, scoredCandidate{term: term, importance: importance})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].importance > scored[j].importance
	})

	ranked := make([]string, 0, len(scored))
	for _, c := range scored {
		ranked = append(ranked, c.term)
	}
	return ranked
}
