package compose

import (
	"sort"

	"shopmind/internal/intent"
	"shopmind/internal/style"
)

// =============================================================================
// FOLLOW-UP SUGGESTIONS
// =============================================================================

var pricingSuggestions = []string{
	"Show high-rated items under $80",
	"Compare value options in shoes",
	"Find budget picks with best ratings",
	"What is the median price for jackets?",
}

var recommendationSuggestions = []string{
	"Suggest top-rated running shoes",
	"Find products similar to this style",
	"Recommend items with strong value score",
	"Show me a diverse shortlist of options",
}

var siteHelpSuggestions = []string{
	"How do I buy a shirt on this site?",
	"Where can I track my orders?",
	"How do roles and dev mode work?",
	"How long do auth tokens/sessions last?",
}

var defaultSuggestions = []string{
	"Show me trending jackets under $120",
	"Find products similar to running shoes",
	"How do I check my order history?",
	"Help me compare products for value",
}

// Suggestions returns a fixed follow-up list keyed off the shopper's most
// frequent historical intent, not the current turn's. Ties keep declared
// intent order.
func Suggestions(profile style.Profile) []string {
	ranked := make([]intent.Intent, len(intent.Intents))
	copy(ranked, intent.Intents)
	sort.SliceStable(ranked, func(i, j int) bool {
		return profile.IntentCounts[ranked[i]] > profile.IntentCounts[ranked[j]]
	})

	switch ranked[0] {
	case intent.Pricing:
		return pricingSuggestions
	case intent.Recommendation:
		return recommendationSuggestions
	case intent.SiteHelp:
		return siteHelpSuggestions
	default:
		return defaultSuggestions
	}
}
