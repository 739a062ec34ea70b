package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"shopmind/internal/logging"
)

// =============================================================================
// FILE SOURCE - JSON-backed knowledge base
// =============================================================================

// kbFile is the on-disk knowledge base document. Synonym tables are plain
// JSON objects; their entries are re-ordered longest-alias-first on load so
// that multi-word aliases ("wine red") win over their substrings ("red").
type kbFile struct {
	Version     string                    `json:"version"`
	LastUpdated string                    `json:"lastUpdated"`
	Description string                    `json:"description"`
	Intents     map[string]intentMetadata `json:"intents"`
	SiteHelp    map[string]HelpEntry      `json:"siteHelp"`

	ResponseTemplates map[string]map[string][]string `json:"responseTemplates"`

	CategoryHints    []string          `json:"categoryHints"`
	ColorHints       []string          `json:"colorHints"`
	ColorSynonyms    map[string]string `json:"colorSynonyms"`
	CategorySynonyms map[string]string `json:"categorySynonyms"`
	Stopwords        []string          `json:"stopwords"`
}

type intentMetadata struct {
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// FileSource serves knowledge from a JSON file. Fields the file omits fall
// back to the builtin tables, so a partial knowledge base is valid.
type FileSource struct {
	mu      sync.RWMutex
	path    string
	version string

	stopwords        map[string]struct{}
	categoryHints    []string
	colorHints       []string
	categorySynonyms []Synonym
	colorSynonyms    []Synonym
	corpus           map[string][]string
	siteHelp         []HelpEntry
	templates        map[string]map[string][]string

	builtin *Builtin
}

// NewFileSource loads the knowledge base at path.
func NewFileSource(path string) (*FileSource, error) {
	fs := &FileSource{path: path, builtin: NewBuiltin()}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Reload re-reads the knowledge file. On error the previous state is kept.
func (f *FileSource) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read knowledge base: %w", err)
	}

	var kb kbFile
	if err := json.Unmarshal(data, &kb); err != nil {
		return fmt.Errorf("parse knowledge base %s: %w", f.path, err)
	}

	stop := make(map[string]struct{}, len(kb.Stopwords))
	for _, w := range kb.Stopwords {
		stop[w] = struct{}{}
	}

	corpus := make(map[string][]string, len(kb.Intents))
	for name, meta := range kb.Intents {
		corpus[name] = meta.Examples
	}

	// Keyed help entries become an ordered slice; "general" goes last so the
	// keyword scan prefers specific entries.
	names := make([]string, 0, len(kb.SiteHelp))
	for name := range kb.SiteHelp {
		if name != "general" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	help := make([]HelpEntry, 0, len(kb.SiteHelp))
	for _, name := range names {
		help = append(help, kb.SiteHelp[name])
	}
	if general, ok := kb.SiteHelp["general"]; ok {
		help = append(help, general)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.version = kb.Version
	f.stopwords = stop
	f.categoryHints = kb.CategoryHints
	f.colorHints = kb.ColorHints
	f.categorySynonyms = orderSynonyms(kb.CategorySynonyms)
	f.colorSynonyms = orderSynonyms(kb.ColorSynonyms)
	f.corpus = corpus
	f.siteHelp = help
	f.templates = kb.ResponseTemplates

	logging.Knowledge("loaded knowledge base %s (version=%s, intents=%d, help=%d)",
		f.path, kb.Version, len(corpus), len(help))
	return nil
}

// orderSynonyms converts a JSON object into a deterministic slice: longest
// alias first, then lexicographic. Substring matching depends on this order.
func orderSynonyms(m map[string]string) []Synonym {
	out := make([]Synonym, 0, len(m))
	for alias, canonical := range m {
		out = append(out, Synonym{Alias: alias, Canonical: canonical})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Alias) != len(out[j].Alias) {
			return len(out[i].Alias) > len(out[j].Alias)
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

// Name implements Source.
func (f *FileSource) Name() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.version != "" {
		return "file:" + f.version
	}
	return "file"
}

// Stopword implements Source.
func (f *FileSource) Stopword(token string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.stopwords) == 0 {
		return f.builtin.Stopword(token)
	}
	_, ok := f.stopwords[token]
	return ok
}

// CategoryHints implements Source.
func (f *FileSource) CategoryHints() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.categoryHints) == 0 {
		return f.builtin.CategoryHints()
	}
	return f.categoryHints
}

// ColorHints implements Source.
func (f *FileSource) ColorHints() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.colorHints) == 0 {
		return f.builtin.ColorHints()
	}
	return f.colorHints
}

// CategorySynonyms implements Source.
func (f *FileSource) CategorySynonyms() []Synonym {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.categorySynonyms) == 0 {
		return f.builtin.CategorySynonyms()
	}
	return f.categorySynonyms
}

// ColorSynonyms implements Source.
func (f *FileSource) ColorSynonyms() []Synonym {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.colorSynonyms) == 0 {
		return f.builtin.ColorSynonyms()
	}
	return f.colorSynonyms
}

// IntentExamples implements Source.
func (f *FileSource) IntentExamples(intent string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.corpus) == 0 {
		return f.builtin.IntentExamples(intent)
	}
	return f.corpus[intent]
}

// SiteHelp implements Source.
func (f *FileSource) SiteHelp() []HelpEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.siteHelp
}

// ResponseTemplates implements Source.
func (f *FileSource) ResponseTemplates(kind, style string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if kinds, ok := f.templates[kind]; ok {
		return kinds[style]
	}
	return nil
}
