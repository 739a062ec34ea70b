// Package intent classifies user messages into a closed set of shopping
// intents using a multinomial Naive Bayes model over a small labeled corpus,
// layered with regex rule boosts and a softmax normalization.
package intent

// Intent is the classified purpose of a user message.
type Intent string

const (
	Greeting       Intent = "greeting"
	ProductSearch  Intent = "product_search"
	CategoryBrowse Intent = "category_browse"
	Pricing        Intent = "pricing"
	Recommendation Intent = "recommendation"
	SiteHelp       Intent = "site_help"
	Fallback       Intent = "fallback"
)

// Intents lists every intent in declaration order. The order is behavior:
// classification ties and suggestion-ranking ties resolve to the earlier
// entry, so reordering this slice changes output.
var Intents = []Intent{
	Greeting,
	ProductSearch,
	CategoryBrowse,
	Pricing,
	Recommendation,
	SiteHelp,
	Fallback,
}

// BuyPhrases are the fixed purchase phrases. Any substring hit on the
// lowercased message adds the product_search boost; the entity extractor
// also filters characteristic tokens contained in one of these phrases.
var BuyPhrases = []string{"buy", "purchase", "shop", "get me", "looking for"}

// Valid reports whether s names a known intent.
func Valid(s string) bool {
	for _, it := range Intents {
		if string(it) == s {
			return true
		}
	}
	return false
}
