package keywords

import (
	"regexp"
	"strings"
)

// productPatterns match terms that usually name a product surface or
// capability. A candidate matching any of these gets an importance
// boost during ranking.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(feature|features|functionality|function|functions)\b`),
	regexp.MustCompile(`\b(button|buttons|menu|menus|panel|panels|screen|screens)\b`),
	regexp.MustCompile(`\b(api|apis|endpoint|endpoints|service|services)\b`),
	regexp.MustCompile(`\b(ui|ux|interface|interfaces|design|designs)\b`),
	regexp.MustCompile(`\b(component|components|module|modules|widget|widgets)\b`),
	regexp.MustCompile(`\b(dashboard|dashboards|page|pages|view|views)\b`),
	regexp.MustCompile(`\b(integration|integrations|plugin|plugins|extension|extensions)\b`),
}

// technicalTerms are feature names that show up in product feedback
// without matching any structural pattern.
var technicalTerms = []string{
	"authentication", "authorization", "encryption", "security",
	"analytics", "reporting", "dashboard", "metrics", "logging",
	"notification", "alert", "reminder", "email", "sms",
	"payment", "billing", "subscription", "invoice",
	"search", "filter", "sort", "export", "import",
	"sync", "backup", "restore", "migration",
	"api", "webhook", "integration", "connector",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "should": {}, "could": {}, "can": {},
	"may": {}, "might": {}, "must": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "its": {}, "they": {},
	"them": {}, "their": {}, "we": {}, "our": {}, "you": {},
	"your": {}, "he": {}, "she": {}, "his": {}, "her": {}, "not": {},
	"no": {}, "nor": {}, "so": {}, "than": {}, "too": {}, "very": {},
	"just": {}, "about": {}, "into": {}, "over": {}, "under": {},
	"again": {}, "then": {}, "once": {}, "here": {}, "there": {},
	"when": {}, "where": {}, "why": {}, "how": {}, "all": {},
	"any": {}, "both": {}, "each": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "only": {},
	"own": {}, "same": {}, "also": {}, "out": {}, "off": {},
	"up": {}, "down": {}, "what": {}, "which": {}, "who": {},
	"whom": {}, "if": {}, "because": {}, "while": {}, "during": {},
	"before": {}, "after": {}, "between": {}, "through": {},
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

func isTechnicalTerm(candidate string) bool {
	for _, term := range technicalTerms {
		if strings.Contains(candidate, term) {
			return true
		}
	}
	return false
}

func matchesProductPattern(candidate string) bool {
	for _, pattern := range productPatterns {
		if pattern.MatchString(candidate) {
			return true
		}
	}
	return false
}
