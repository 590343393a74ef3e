package domain

import "strings"

// stopWordRatio is the share of stop words above which text is assumed
// to be English prose.
const stopWordRatio = 0.1

var englishStopWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {},
	"a": {}, "in": {}, "that": {}, "have": {}, "i": {},
	"it": {}, "for": {}, "not": {}, "on": {}, "with": {},
	"he": {}, "as": {}, "you": {}, "do": {}, "at": {},
	"this": {}, "but": {}, "his": {}, "by": {}, "from": {},
	"they": {}, "we": {}, "say": {}, "her": {}, "she": {},
	"or": {}, "an": {}, "will": {}, "my": {}, "one": {},
}

// IsLikelyEnglish estimates whether text is English by counting common
// short function words. It is a coarse frequency heuristic, not a
// language-identification model: lowercase the text, split on whitespace
// and report whether stop words make up more than 10% of the tokens.
// Empty input yields false.
func IsLikelyEnglish(text string) bool {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return false
	}

	matched := 0
	for _, token := range tokens {
		if _, ok := englishStopWords[token]; ok {
			matched++
		}
	}

	return float64(matched) > float64(len(tokens))*stopWordRatio
}
