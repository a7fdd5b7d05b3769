package translation

import "strings"

var sourceKeywords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the and or of in to for with by safe compatible
		breastfeeding medication product unsafe moderate severe adverse effects
		recommended alternative discontinue read commentary best option likely
		compatibility limited incompatible very`) {
		sourceKeywords[w] = struct{}{}
	}
}

// LooksLikeSource reports whether text reads like English medical prose:
// more than two of its whitespace separated tokens must be known keywords.
// Punctuation stays attached to tokens, so "safe." does not count.
func LooksLikeSource(text string) bool {
	hits := 0
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if _, ok := sourceKeywords[tok]; ok {
			hits++
			if hits > 2 {
				return true
			}
		}
	}
	return false
}
