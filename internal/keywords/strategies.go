package keywords

import (
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

// A Strategy is one tier of the extraction ladder. Extract returns
// lowercase candidate terms in document order; a nil or empty result
// means the tier produced nothing and the next tier should run. A
// strategy never returns an error.
type Strategy struct {
	Name    string
	Extract func(text string) []string
}

func defaultStrategies() []Strategy {
	return []Strategy{
		{Name: "tagger", Extract: extractWithTagger},
		{Name: "tokenizer", Extract: extractWithTokenizer},
		{Name: "regex", Extract: extractWithRegex},
	}
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func isAdjectiveTag(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}

// extractWithTagger runs the full POS tagger and keeps nouns plus
// adjective+noun and noun+noun bigrams.
func extractWithTagger(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	tokens := doc.Tokens()
	var candidates []string
	for i, tok := range tokens {
		word := strings.ToLower(tok.Text)
		if isNounTag(tok.Tag) {
			candidates = append(candidates, word)
		}
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if (isAdjectiveTag(tok.Tag) || isNounTag(tok.Tag)) && isNounTag(next.Tag) {
				candidates = append(candidates, word+" "+strings.ToLower(next.Text))
			}
		}
	}
	return candidates
}

var nounSuffixes = []string{
	"tion", "sion", "ment", "ness", "ity", "ance", "ence",
	"ing", "board", "ware", "base", "hook", "port",
}

var adjectiveSuffixes = []string{
	"ful", "ous", "ive", "able", "ible", "ical", "less",
}

func looksLikeNoun(word string) bool {
	if isTechnicalTerm(word) || matchesProductPattern(word) {
		return true
	}
	for _, suffix := range nounSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

func looksLikeAdjective(word string) bool {
	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

var wordSplitPattern = regexp.MustCompile(`[^a-zA-Z]+`)

// extractWithTokenizer is the lighter tier: split on non-letters and
// classify words by suffix and vocabulary instead of a trained tagger.
func extractWithTokenizer(text string) []string {
	words := wordSplitPattern.Split(strings.ToLower(text), -1)

	var candidates []string
	for i, word := range words {
		if word == "" {
			continue
		}
		if looksLikeNoun(word) {
			candidates = append(candidates, word)
		}
		if i+1 < len(words) && words[i+1] != "" {
			next := words[i+1]
			if (looksLikeAdjective(word) || looksLikeNoun(word)) && looksLikeNoun(next) {
				candidates = append(candidates, word+" "+next)
			}
		}
	}
	return candidates
}

var capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// extractWithRegex is the last-resort tier: product pattern hits plus
// capitalized words, which are usually product names.
func extractWithRegex(text string) []string {
	var candidates []string
	lower := strings.ToLower(text)
	for _, pattern := range productPatterns {
		candidates = append(candidates, pattern.FindAllString(lower, -1)...)
	}
	for _, word := range capitalizedPattern.FindAllString(text, -1) {
		if len(word) > 2 {
			candidates = append(candidates, strings.ToLower(word))
		}
	}
	return candidates
}
