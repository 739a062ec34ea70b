package intent

import (
	"regexp"
	"strings"

	"shopmind/internal/knowledge"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Tokenize lowercases text, strips everything outside [a-z0-9 ], splits on
// whitespace runs, and drops tokens of length <= 1 and stopwords from the
// supplied knowledge source. Pure function; safe for concurrent use.
func Tokenize(text string, src knowledge.Source) []string {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(text), " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) <= 1 || src.Stopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
