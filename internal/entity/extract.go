// Package entity extracts structured search parameters from a raw message:
// canonical category and color, a budget ceiling, a compact free-text search
// term, and a bounded set of characteristic keywords. Each extractor is
// independent of the others and of the classifier.
package entity

import (
	"regexp"
	"strconv"
	"strings"

	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
)

// Entities is the extraction result. Empty strings mean "any"; a nil Budget
// means no price ceiling was expressed.
type Entities struct {
	Category        string   `json:"category"`
	Color           string   `json:"color"`
	Budget          *float64 `json:"budget"`
	SearchTerm      string   `json:"searchTerm"`
	Characteristics []string `json:"characteristics"`
}

// Only an upper bound is supported; ranges and lower bounds are not parsed.
var budgetPattern = regexp.MustCompile(`(under|below|less than|max|budget)\s*\$?\s*(\d{2,5})`)

// Filler tokens that never count as characteristics.
var characteristicNoise = map[string]struct{}{
	"stuff": {}, "things": {}, "items": {}, "around": {}, "about": {},
	"best": {}, "top": {}, "rated": {}, "similar": {}, "option": {},
	"options": {}, "show": {}, "find": {}, "need": {}, "want": {},
	"please": {}, "less": {}, "than": {}, "under": {}, "below": {},
	"bucks": {}, "dollar": {}, "dollars": {},
}

// Extract runs every extractor against the message.
func Extract(message string, src knowledge.Source) Entities {
	return Entities{
		Category:        Category(message, src),
		Color:           Color(message, src),
		Budget:          Budget(message),
		SearchTerm:      SearchTerm(message, src),
		Characteristics: Characteristics(message, src),
	}
}

// Category resolves the first synonym alias found as a substring of the
// lowercased message, then falls back to the flat hint list. Empty string if
// nothing matches.
func Category(message string, src knowledge.Source) string {
	text := strings.ToLower(message)

	for _, syn := range src.CategorySynonyms() {
		if strings.Contains(text, syn.Alias) {
			return syn.Canonical
		}
	}
	for _, hint := range src.CategoryHints() {
		if strings.Contains(text, hint) {
			return hint
		}
	}
	return ""
}

// Color resolves the first color synonym found as a substring of the
// lowercased message. Canonical values are capitalized display strings.
func Color(message string, src knowledge.Source) string {
	text := strings.ToLower(message)

	for _, syn := range src.ColorSynonyms() {
		if strings.Contains(text, syn.Alias) {
			return syn.Canonical
		}
	}
	return ""
}

// Budget parses an upper price bound like "under 100" or "budget $250".
func Budget(message string) *float64 {
	match := budgetPattern.FindStringSubmatch(strings.ToLower(message))
	if match == nil {
		return nil
	}
	value, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return nil
	}
	return &value
}

// SearchTerm joins the first 3 tokens that survive tokenization, a length
// floor of 3, and the category/color/filler filters.
func SearchTerm(message string, src knowledge.Source) string {
	var kept []string
	for _, token := range intent.Tokenize(message, src) {
		if len(token) <= 2 {
			continue
		}
		if contains(src.CategoryHints(), token) || contains(src.ColorHints(), token) {
			continue
		}
		if token == "stuff" || token == "things" || token == "items" {
			continue
		}
		kept = append(kept, token)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// Characteristics collects up to 6 distinct descriptive tokens (length >= 3)
// that are not category hints, color hints, noise words, or fragments of a
// buy phrase. First-seen order is preserved.
func Characteristics(message string, src knowledge.Source) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, token := range intent.Tokenize(message, src) {
		if len(token) < 3 {
			continue
		}
		if contains(src.CategoryHints(), token) || contains(src.ColorHints(), token) {
			continue
		}
		if _, noisy := characteristicNoise[token]; noisy {
			continue
		}
		if insideBuyPhrase(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
		if len(out) == 6 {
			break
		}
	}
	return out
}

// insideBuyPhrase reports whether token is a substring of any buy phrase,
// so "get" and "loo" are filtered but "getaway" is not.
func insideBuyPhrase(token string) bool {
	for _, phrase := range intent.BuyPhrases {
		if strings.Contains(phrase, token) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
