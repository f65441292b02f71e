package insights

// stopwords are skipped when counting title words. Besides common
// English words this covers the words of generated placeholder titles.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {},

	"be": {}, "been": {}, "but": {}, "by": {},

	"can": {}, "could": {},

	"did": {}, "do": {}, "does": {},

	"each": {}, "every": {},

	"for": {}, "from": {},

	"had": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {}, "how": {},

	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},

	"just": {},

	"me": {}, "more": {}, "most": {}, "my": {},

	"new": {}, "no": {}, "not": {}, "now": {},

	"of": {}, "on": {}, "one": {}, "or": {}, "our": {}, "out": {},

	"so": {}, "some": {},

	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "to": {},

	"up": {}, "us": {},

	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "which": {},
	"who": {}, "why": {}, "will": {}, "with": {}, "would": {},

	"you": {}, "your": {},

	// placeholder title words
	"title": {}, "name": {}, "listing": {}, "website": {}, "show": {},
	"tweet": {}, "book": {}, "product": {}, "article": {}, "property": {},
	"tv": {}, "www": {}, "com": {},
}

// IsStopword reports whether word is ignored in keyword counts.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
