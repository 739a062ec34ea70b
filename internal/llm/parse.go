package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var embeddedJSON = regexp.MustCompile(`\{[\s\S]*\}`)

// parseConversationResult decodes model output that should be a JSON object
// but may arrive wrapped in markdown fences or surrounded by prose. Tries
// direct decode, then fence stripping, then brace extraction.
func parseConversationResult(raw string) (ConversationResult, error) {
	var result ConversationResult

	if err := json.Unmarshal([]byte(raw), &result); err == nil {
		return normalizeResult(result), nil
	}

	stripped := strings.TrimSpace(raw)
	stripped = strings.TrimPrefix(stripped, "```json")
	stripped = strings.TrimPrefix(stripped, "```")
	stripped = strings.TrimSuffix(stripped, "```")
	stripped = strings.TrimSpace(stripped)
	if err := json.Unmarshal([]byte(stripped), &result); err == nil {
		return normalizeResult(result), nil
	}

	if match := embeddedJSON.FindString(raw); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return normalizeResult(result), nil
		}
	}

	return ConversationResult{}, fmt.Errorf("no JSON object found in model output")
}

func normalizeResult(result ConversationResult) ConversationResult {
	if result.Reply == "" {
		result.Reply = "How can I assist you?"
	}
	if result.Intent == "" {
		result.Intent = "unknown"
	}
	return result
}
