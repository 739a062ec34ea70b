package compose

import (
	"strings"

	"shopmind/internal/knowledge"
)

// =============================================================================
// SITE HELP REPLIES
// =============================================================================

// SiteHelpReply answers store-navigation questions. Knowledge-base entries
// take precedence; the keyword chain below is the legacy fallback and its
// ordering is load-bearing (earlier rules win for overlapping keywords).
func SiteHelpReply(message string, src knowledge.Source) string {
	text := strings.ToLower(message)

	for _, entry := range src.SiteHelp() {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return entry.ShortAnswer
			}
		}
	}

	if strings.Contains(text, "role") || strings.Contains(text, "dev mode") ||
		strings.Contains(text, "developer mode") || strings.Contains(text, "permission") {
		return "This app supports user and dev roles. Dev mode availability depends on your role, and when enabled it unlocks Tickets and the Dev Testing page."
	}

	if strings.Contains(text, "profile") {
		return "Open the Profile page from the user dropdown to view and manage account details."
	}

	if strings.Contains(text, "token") || strings.Contains(text, "session") ||
		strings.Contains(text, "expire") || strings.Contains(text, "expiry") {
		return "Auth uses JWT sessions. Session and JWT max age are 8 hours, with a 30-minute update age, so tokens refresh periodically while active."
	}

	if strings.Contains(text, "testing") || strings.Contains(text, "test page") || strings.Contains(text, "qa") {
		return "When dev mode is enabled, use the Dev Testing page for testing workflows. You can also run automated tests with npm scripts like test, test:coverage, and test:smoke."
	}

	if strings.Contains(text, "test") || strings.Contains(text, "jest") || strings.Contains(text, "pytest") {
		return "Available tests include frontend Jest tests and backend Python pytest suites. Common commands: npm test, npm run test:coverage, npm run test:smoke, npm run test:python, and npm run test:all."
	}

	if strings.Contains(text, "buy") || strings.Contains(text, "purchase") || strings.Contains(text, "shop") {
		return "To buy: go to Products, open an item, choose options, add to cart, then checkout from the Cart page."
	}

	if strings.Contains(text, "order") {
		return "You can view order history on the Orders page after signing in."
	}
	if strings.Contains(text, "cart") || strings.Contains(text, "checkout") {
		return "Add items from Products, then open Cart and proceed to Checkout to complete your purchase."
	}
	if strings.Contains(text, "favorite") {
		return "Use the Favorites page to save items you want to track or compare later."
	}
	if strings.Contains(text, "ticket") {
		return "The Tickets page can generate implementation tickets and now includes analytics/history."
	}
	if strings.Contains(text, "login") || strings.Contains(text, "sign in") || strings.Contains(text, "account") {
		return "Use Sign In from the header menu or /auth/signin to access personalized recommendations, profile, orders, and role-based dev features."
	}

	return "I can help with products, orders, cart/checkout, favorites, tickets, sign-in/profile, roles/dev mode, token/session behavior, and testing workflows."
}
