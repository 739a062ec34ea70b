package compose

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"shopmind/internal/catalog"
	"shopmind/internal/entity"
	"shopmind/internal/intent"
)

// =============================================================================
// QUICK LINKS
// =============================================================================

// QuickLink is a navigational affordance rendered alongside the reply.
type QuickLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Kind  string `json:"kind"`
}

// orderedQuery builds a query string with parameters in insertion order.
// Encoding order is part of the emitted link contract, so the stdlib's
// sorted url.Values.Encode cannot be used here.
type orderedQuery struct {
	pairs []string
}

func (q *orderedQuery) set(key, value string) {
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *orderedQuery) encode() string {
	return strings.Join(q.pairs, "&")
}

// QuickLinks assembles the result-listing link, per-product links, the
// browse-all link, and keyword-conditional navigation links, deduplicated by
// target and capped at 6.
func QuickLinks(message string, it intent.Intent, products []catalog.ProductHit, ents entity.Entities, session string) []QuickLink {
	text := strings.ToLower(message)
	var links []QuickLink

	query := &orderedQuery{}
	if ents.SearchTerm != "" {
		query.set("search", ents.SearchTerm)
	}
	if ents.Category != "" {
		query.set("category", ents.Category)
	}
	if ents.Color != "" {
		query.set("color", ents.Color)
	}
	if len(ents.Characteristics) > 0 {
		query.set("characteristics", strings.Join(ents.Characteristics, ","))
	}
	query.set("assistantSession", session)
	if len(products) > 0 {
		ids := make([]string, 0, 8)
		for i, p := range products {
			if i >= 8 {
				break
			}
			ids = append(ids, strconv.FormatInt(p.ID, 10))
		}
		query.set("assistantRecs", strings.Join(ids, ","))
	}

	resultsHref := "/plp"
	if encoded := query.encode(); encoded != "" {
		resultsHref = "/plp?" + encoded
	}
	links = append(links, QuickLink{Label: "Open these results in PLP", Href: resultsHref, Kind: "location"})

	for i, p := range products {
		if i >= 4 {
			break
		}
		links = append(links, QuickLink{
			Label: fmt.Sprintf("Open %s", p.Name),
			Href:  fmt.Sprintf("/pdp/%d", p.ID),
			Kind:  "product",
		})
	}

	links = append(links, QuickLink{Label: "Browse all products", Href: "/plp", Kind: "location"})

	if strings.Contains(text, "checkout") || strings.Contains(text, "buy") || strings.Contains(text, "purchase") {
		links = append(links, QuickLink{Label: "Go to cart", Href: "/cart", Kind: "location"})
		links = append(links, QuickLink{Label: "Go to checkout", Href: "/checkout", Kind: "location"})
	}
	if strings.Contains(text, "order") {
		links = append(links, QuickLink{Label: "Open orders", Href: "/orders", Kind: "location"})
	}
	if strings.Contains(text, "favorite") {
		links = append(links, QuickLink{Label: "Open favorites", Href: "/favorites", Kind: "location"})
	}
	if strings.Contains(text, "ticket") {
		links = append(links, QuickLink{Label: "Open tickets", Href: "/tickets", Kind: "location"})
	}
	if strings.Contains(text, "profile") || strings.Contains(text, "account") {
		links = append(links, QuickLink{Label: "Open profile", Href: "/profile", Kind: "location"})
	}
	if strings.Contains(text, "login") || strings.Contains(text, "sign in") {
		links = append(links, QuickLink{Label: "Open sign in", Href: "/auth/signin", Kind: "location"})
	}
	if strings.Contains(text, "role") || strings.Contains(text, "dev mode") ||
		strings.Contains(text, "developer mode") || strings.Contains(text, "testing") ||
		strings.Contains(text, "test") {
		links = append(links, QuickLink{Label: "Open dev testing", Href: "/dev/testing", Kind: "location"})
	}

	if it == intent.SiteHelp && !strings.Contains(text, "checkout") && !strings.Contains(text, "order") {
		links = append(links, QuickLink{Label: "Open assistant home", Href: "/assistant", Kind: "location"})
	}

	seen := make(map[string]struct{}, len(links))
	deduped := links[:0]
	for _, link := range links {
		if _, ok := seen[link.Href]; ok {
			continue
		}
		seen[link.Href] = struct{}{}
		deduped = append(deduped, link)
	}

	if len(deduped) > 6 {
		deduped = deduped[:6]
	}
	return deduped
}
