// Package knowledge provides the swappable vocabulary and corpus source for
// the discovery engine: stopwords, category/color synonym tables, the labeled
// intent corpus, site-help entries, and response templates.
//
// Two implementations exist: the builtin tables below, and a JSON-backed
// FileSource that operators can edit without a rebuild. Callers resolve a
// Source once and thread it through the pipeline; no component decides on its
// own which source is active.
package knowledge

// Synonym maps a user-facing alias to a canonical value. Synonym lists are
// ordered: the first alias found as a substring of the message wins, so the
// order here is behavior, not presentation.
type Synonym struct {
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
}

// HelpLink is a navigation link attached to a site-help entry.
type HelpLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Kind  string `json:"kind"`
}

// HelpEntry is a keyword-routed canned answer for site questions.
type HelpEntry struct {
	Keywords       []string   `json:"keywords"`
	ShortAnswer    string     `json:"shortAnswer"`
	DetailedAnswer string     `json:"detailedAnswer"`
	QuickLinks     []HelpLink `json:"quickLinks"`
}

// Source is the capability interface the engine consumes. Implementations
// must be safe for concurrent readers.
type Source interface {
	// Name identifies the source in logs and response metadata.
	Name() string

	// Stopword reports whether token is filtered out during tokenization.
	Stopword(token string) bool

	// CategoryHints returns the flat category hint list.
	CategoryHints() []string

	// ColorHints returns the flat color hint list.
	ColorHints() []string

	// CategorySynonyms returns the ordered alias -> canonical category table.
	CategorySynonyms() []Synonym

	// ColorSynonyms returns the ordered alias -> canonical color table.
	// Canonical values are capitalized display strings.
	ColorSynonyms() []Synonym

	// IntentExamples returns the labeled example sentences for an intent
	// name, or nil when the source has none.
	IntentExamples(intent string) []string

	// SiteHelp returns all site-help entries. The entry keyed "general" (by
	// convention the last entry here) is the fallback answer.
	SiteHelp() []HelpEntry

	// ResponseTemplates returns opener templates for a reply kind
	// ("greeting" or "fallback") and style ("casual" or "formal"), or nil.
	ResponseTemplates(kind, style string) []string
}

// =============================================================================
// BUILTIN SOURCE
// =============================================================================

// Builtin is the compiled-in knowledge source. It carries the minimal tables
// the engine needs to run with no external files.
type Builtin struct{}

// NewBuiltin returns the builtin source.
func NewBuiltin() *Builtin { return &Builtin{} }

var builtinStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "about": {}, "want": {}, "need": {}, "show": {}, "find": {},
	"products": {}, "product": {}, "please": {}, "hello": {}, "help": {},
	"site": {}, "price": {}, "cheap": {}, "expensive": {},
}

var builtinCategoryHints = []string{"shirt", "dress", "jacket", "shoes", "pants", "accessories"}

var builtinColorHints = []string{
	"black", "white", "gray", "grey", "blue", "navy", "olive", "brown",
	"cream", "burgundy", "red", "charcoal",
}

var builtinCategorySynonyms = []Synonym{
	{Alias: "sneaker", Canonical: "shoes"},
	{Alias: "sneakers", Canonical: "shoes"},
	{Alias: "shoe", Canonical: "shoes"},
	{Alias: "tshirt", Canonical: "shirt"},
	{Alias: "t-shirt", Canonical: "shirt"},
	{Alias: "tee", Canonical: "shirt"},
	{Alias: "tees", Canonical: "shirt"},
	{Alias: "trouser", Canonical: "pants"},
	{Alias: "trousers", Canonical: "pants"},
}

var builtinColorSynonyms = []Synonym{
	{Alias: "wine red", Canonical: "Burgundy"},
	{Alias: "maroon", Canonical: "Burgundy"},
	{Alias: "crimson", Canonical: "Burgundy"},
	{Alias: "grey", Canonical: "Gray"},
	{Alias: "navy", Canonical: "Navy"},
	{Alias: "blue", Canonical: "Blue"},
	{Alias: "black", Canonical: "Black"},
	{Alias: "white", Canonical: "White"},
	{Alias: "gray", Canonical: "Gray"},
	{Alias: "olive", Canonical: "Olive"},
	{Alias: "brown", Canonical: "Brown"},
	{Alias: "cream", Canonical: "Cream"},
	{Alias: "red", Canonical: "Burgundy"},
	{Alias: "charcoal", Canonical: "Charcoal"},
}

var builtinCorpus = map[string][]string{
	"greeting": {
		"hi there",
		"hello",
		"good morning",
		"hey assistant",
	},
	"product_search": {
		"find running shoes",
		"show me black jacket",
		"i want to buy a shirt",
		"help me find products",
	},
	"category_browse": {
		"browse jackets",
		"show categories",
		"show me dresses",
		"what pants do you have",
	},
	"pricing": {
		"cheap options under 100",
		"what is the price",
		"budget products",
		"show affordable shoes",
	},
	"recommendation": {
		"recommend me good products",
		"best for me",
		"similar to running shoes",
		"suggest top rated items",
	},
	"site_help": {
		"how do i checkout",
		"where are my orders",
		"how to use favorites",
		"how do i login",
	},
	"fallback": {
		"help",
		"not sure",
		"something else",
	},
}

// Name implements Source.
func (b *Builtin) Name() string { return "builtin" }

// Stopword implements Source.
func (b *Builtin) Stopword(token string) bool {
	_, ok := builtinStopwords[token]
	return ok
}

// CategoryHints implements Source.
func (b *Builtin) CategoryHints() []string { return builtinCategoryHints }

// ColorHints implements Source.
func (b *Builtin) ColorHints() []string { return builtinColorHints }

// CategorySynonyms implements Source.
func (b *Builtin) CategorySynonyms() []Synonym { return builtinCategorySynonyms }

// ColorSynonyms implements Source.
func (b *Builtin) ColorSynonyms() []Synonym { return builtinColorSynonyms }

// IntentExamples implements Source.
func (b *Builtin) IntentExamples(intent string) []string { return builtinCorpus[intent] }

// SiteHelp implements Source. The builtin source has no help entries; the
// composer falls back to its own keyword table.
func (b *Builtin) SiteHelp() []HelpEntry { return nil }

// ResponseTemplates implements Source. The builtin source has no templates;
// the composer uses its compiled-in sets.
func (b *Builtin) ResponseTemplates(kind, style string) []string { return nil }
