// Package compose assembles reply text and UI affordances from the
// classified intent, ranked products, stats, and style profile. Variant
// selection is hash-seeded rather than random so identical input always
// produces identical output.
package compose

import (
	"fmt"
	"strings"

	"shopmind/internal/catalog"
	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
	"shopmind/internal/rank"
	"shopmind/internal/style"
)

// =============================================================================
// OPENERS AND TEMPLATES
// =============================================================================

var apologeticOpeners = []string{
	"You are right to be frustrated. Let me make this simple.",
	"Thanks for the direct feedback. I will keep this concise.",
	"I understand. Let us fix this quickly.",
}

var formalOpeners = []string{
	"Here is the analysis I prepared for you.",
	"Based on your request, I evaluated the available options.",
	"I reviewed the data and identified relevant matches.",
}

var casualOpeners = []string{
	"Here is what I found.",
	"I ran a quick analysis for you.",
	"Based on your request, this looks promising.",
}

var builtinGreetings = map[string][]string{
	"casual": {
		"Hey! I can help you find products, compare prices, or navigate the store. What are you after?",
		"Hi there! Tell me what you are shopping for and I will pull up options.",
		"Hello! Ask me about products, prices, or anything on the site.",
	},
	"formal": {
		"Hello. I can assist with product discovery, pricing analysis, and site navigation. How may I help?",
		"Welcome. Please describe what you are looking for and I will find relevant options.",
		"Good day. I am ready to help with products, orders, or store features.",
	},
}

var builtinFallbacks = map[string][]string{
	"casual": {
		"I did not quite catch that. Try naming a product type, a budget, or a color.",
		"Hmm, I am not sure what you meant. A product name or category would help me out.",
		"Not sure I follow. Tell me what kind of item you want and I will take it from there.",
	},
	"formal": {
		"I was unable to determine your request. Specifying a product type, budget, or color would help.",
		"Apologies, I could not interpret that. Please describe the item or assistance you need.",
		"I did not understand the request. A category or product name would let me assist you.",
	},
}

// =============================================================================
// REPLY ASSEMBLY
// =============================================================================

// StatsNarrative renders the aggregate stats line appropriate for the intent.
// Empty when there are no results.
func StatsNarrative(stats rank.ProductStats, it intent.Intent) string {
	if stats.Count == 0 {
		return ""
	}
	switch it {
	case intent.Pricing:
		return fmt.Sprintf("Price stats: median $%.2f, mean $%.2f, spread σ=$%.2f.",
			stats.MedianPrice, stats.MeanPrice, stats.StdPrice)
	case intent.Recommendation:
		return fmt.Sprintf("Data signal: average rating %.2f across %d items with %d category buckets.",
			stats.MeanRating, stats.Count, stats.CategoryDiversity)
	default:
		return fmt.Sprintf("Quick stats: $%.2f to $%.2f (median $%.2f).",
			stats.MinPrice, stats.MaxPrice, stats.MedianPrice)
	}
}

// FormatProducts renders the top results as a bulleted list. The caller is
// responsible for the empty case (LLM hook or static message).
func FormatProducts(products []catalog.ProductHit) string {
	lines := []string{"Here are some options:"}
	for i, p := range products {
		if i >= 5 {
			break
		}
		rating := ""
		if p.RatingAvg != nil {
			rating = fmt.Sprintf(" | ⭐ %.1f", *p.RatingAvg)
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) — $%.2f%s", p.Name, p.Category, p.Price, rating))
	}
	return strings.Join(lines, "\n")
}

// GreetingReply picks a greeting template matched to the shopper's formality.
func GreetingReply(message string, profile style.Profile, src knowledge.Source) string {
	return templateReply(message, "greeting", profile, src, builtinGreetings)
}

// FallbackReply picks a clarification template matched to the shopper's
// formality.
func FallbackReply(message string, profile style.Profile, src knowledge.Source) string {
	return templateReply(message, "fallback", profile, src, builtinFallbacks)
}

func templateReply(message, kind string, profile style.Profile, src knowledge.Source, builtin map[string][]string) string {
	styleName := "casual"
	if profile.FormalityPreference >= 0.6 {
		styleName = "formal"
	}
	options := src.ResponseTemplates(kind, styleName)
	if len(options) == 0 {
		options = builtin[styleName]
	}
	return PickVariant(message, options)
}

// ConversationalReply wraps the base reply with an opener and optional
// style-gated additions, then dedupes and joins the parts. Calling it twice
// with identical arguments produces byte-identical output.
func ConversationalReply(message string, it intent.Intent, confidence float64, baseReply, statsNarrative string, profile style.Profile) string {
	isFrustrated := profile.FrustrationLevel >= 0.45

	var openers []string
	switch {
	case isFrustrated:
		openers = apologeticOpeners
	case profile.FormalityPreference >= 0.6:
		openers = formalOpeners
	default:
		openers = casualOpeners
	}

	confidenceLine := fmt.Sprintf(
		"Intent confidence is moderate (%.0f%%), so you can refine the query for better matches.",
		confidence*100)
	if confidence >= 0.75 {
		confidenceLine = fmt.Sprintf("Intent confidence is strong (%.0f%%).", confidence*100)
	}

	opener := PickVariant(message, openers)
	parts := []string{opener, baseReply}

	if profile.VerbosityPreference >= 0.45 && !isFrustrated {
		// Confidence line slots between the opener and the base reply.
		parts = append([]string{parts[0], confidenceLine}, parts[1:]...)
	}

	if statsNarrative != "" && profile.VerbosityPreference >= 0.35 && !isFrustrated {
		parts = append(parts, statsNarrative)
	}

	if statsNarrative != "" && profile.MathAffinity >= 0.6 && !isFrustrated {
		parts = append(parts,
			"If you want, I can also compare options using a weighted value score (rating-to-price ratio).")
	}

	if it == intent.Fallback {
		if isFrustrated {
			parts = append(parts, "Give me one target + budget, and I will return only the top 3 choices.")
		} else {
			parts = append(parts, "Try adding product type, budget, or desired style for sharper results.")
		}
	}

	if isFrustrated {
		parts = append(parts, "If you prefer, I can switch to strict step-by-step guidance only.")
	}

	seen := make(map[string]struct{}, len(parts))
	deduped := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		deduped = append(deduped, part)
	}

	return strings.Join(deduped, "\n\n")
}
