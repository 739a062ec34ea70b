package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shopmind/internal/logging"
)

// =============================================================================
// GRAPHQL SEARCHER - storefront backend client
// =============================================================================

// GraphQLSearcher queries the storefront's GraphQL products endpoint.
type GraphQLSearcher struct {
	baseURL string
	client  *http.Client
}

// NewGraphQLSearcher creates a searcher against baseURL (e.g.
// http://localhost:8000). The /graphql path is appended here.
func NewGraphQLSearcher(baseURL string) *GraphQLSearcher {
	return &GraphQLSearcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type graphQLResponse struct {
	Data struct {
		Products []ProductHit `json:"products"`
	} `json:"data"`
}

// Search implements Searcher. Provider failures surface as an error with an
// empty slice; the caller treats that the same as zero results.
func (g *GraphQLSearcher) Search(ctx context.Context, term, category, color string, limit int) ([]ProductHit, error) {
	query := fmt.Sprintf(`
	query {
	  products(searchTerm: %q, category: %q, color: %q, offset: 0, limit: %d) {
	    id
	    name
	    category
	    price
	    brand
	    material
	    tags
	    ratingAvg
	    variants {
	      sku
	      color
	      size
	    }
	  }
	}`, sanitize(term), sanitize(category), sanitize(color), limit)

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encode products query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("products request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products request: status %d", resp.StatusCode)
	}

	var decoded graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	logging.Catalog("graphql search term=%q category=%q color=%q limit=%d -> %d hits",
		term, category, color, limit, len(decoded.Data.Products))
	return decoded.Data.Products, nil
}

// sanitize strips double quotes before interpolation into the query text.
func sanitize(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
