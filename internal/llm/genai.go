// Package llm provides the optional generative enhancement hooks. Every
// function here degrades: callers must always have a deterministic reply
// path of their own.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"shopmind/internal/catalog"
	"shopmind/internal/logging"
)

// =============================================================================
// GENERATOR - Gemini-backed response generation
// =============================================================================

// Config selects the model and generation limits.
type Config struct {
	APIKey          string
	Model           string
	MaxOutputTokens int32
}

// DefaultConfig returns conservative generation settings.
func DefaultConfig() Config {
	return Config{
		Model:           "gemini-2.0-flash",
		MaxOutputTokens: 500,
	}
}

// ConversationResult is the structured outcome of a full generative turn.
type ConversationResult struct {
	Reply      string  `json:"reply"`
	ProductIDs []int64 `json:"productIds"`
	Intent     string  `json:"intent"`
}

// Generator calls the Gemini API for reply generation.
type Generator struct {
	client *genai.Client
	config Config
}

// NewGenerator builds a Gemini-backed generator. Fails if the API key is
// missing or the client cannot be constructed.
func NewGenerator(ctx context.Context, config Config) (*Generator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("llm: API key not configured")
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = DefaultConfig().MaxOutputTokens
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}

	return &Generator{client: client, config: config}, nil
}

func (g *Generator) generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: g.config.MaxOutputTokens,
		})
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("llm: empty response")
	}
	return text, nil
}

const emptyResultSystem = `You are a helpful shopping assistant. When no products match a search, provide a brief, empathetic response that:
1. Acknowledges the specific request
2. Suggests 2-3 concrete alternative search strategies
3. Stays under 80 words
4. Uses a friendly, conversational tone`

// EmptyResultReply generates an alternative-search suggestion for a query
// that matched nothing.
func (g *Generator) EmptyResultReply(ctx context.Context, message, searchTerm, category, color string, budget *float64) (string, error) {
	lines := []string{fmt.Sprintf("User query: %q", message)}
	if searchTerm != "" {
		lines = append(lines, "Search term: "+searchTerm)
	}
	if category != "" {
		lines = append(lines, "Category: "+category)
	}
	if color != "" {
		lines = append(lines, "Color: "+color)
	}
	if budget != nil {
		lines = append(lines, fmt.Sprintf("Budget: under $%.0f", *budget))
	}
	prompt := strings.Join(lines, "\n") +
		"\n\nNo products were found. Generate a helpful response with alternative search suggestions."

	reply, err := g.generate(ctx, emptyResultSystem, prompt)
	if err != nil {
		logging.LLMWarn("empty-result generation failed: %v", err)
		return "", err
	}
	logging.LLM("empty-result reply generated (%d chars)", len(reply))
	return reply, nil
}

const fullConversationSystem = `You are a helpful shopping assistant for an e-commerce site. Based on the user's query, you should:
1. Understand what they want
2. Recommend the most relevant products from the catalog (up to 5)
3. Provide a natural, conversational response

Return your response as JSON:
{
  "reply": "your conversational response here",
  "productIds": [1, 2, 3],
  "intent": "product_search|greeting|help|etc"
}

Keep responses under 150 words. Be friendly and helpful.`

// FullConversation delegates the whole turn to the model: intent, product
// selection, and reply. The catalog digest is capped at 50 products.
func (g *Generator) FullConversation(ctx context.Context, message string, products []catalog.ProductHit) (ConversationResult, error) {
	var digest []string
	for i, p := range products {
		if i >= 50 {
			break
		}
		line := fmt.Sprintf("ID:%d | %s | %s | $%g", p.ID, p.Name, p.Category, p.Price)
		if p.Brand != "" {
			line += " | " + p.Brand
		}
		if p.RatingAvg != nil {
			line += fmt.Sprintf(" | ⭐%.1f", *p.RatingAvg)
		}
		digest = append(digest, line)
	}

	prompt := fmt.Sprintf("User: %q\n\nAvailable products:\n%s\n\nRespond as JSON with reply, productIds, and intent.",
		message, strings.Join(digest, "\n"))

	raw, err := g.generate(ctx, fullConversationSystem, prompt)
	if err != nil {
		logging.LLMWarn("full conversation failed: %v", err)
		return ConversationResult{}, err
	}

	result, err := parseConversationResult(raw)
	if err != nil {
		// Unstructured output still carries a usable reply.
		logging.LLMWarn("conversation result not parseable as JSON, using raw text: %v", err)
		return ConversationResult{Reply: raw, Intent: "unknown"}, nil
	}
	logging.LLM("full conversation selected %d products intent=%s", len(result.ProductIDs), result.Intent)
	return result, nil
}
