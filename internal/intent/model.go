package intent

import "shopmind/internal/knowledge"

// =============================================================================
// BAYES MODEL
// =============================================================================

// Model holds the Naive Bayes counts derived from a labeled corpus. It is
// built once, never mutated afterwards, and therefore safe to share across
// concurrent requests without locking. Construct one explicitly and inject
// it into a Classifier; tests can substitute alternate corpora.
type Model struct {
	// WordCounts[intent][token] is the number of occurrences of token in
	// that intent's example sentences.
	WordCounts map[Intent]map[string]int

	// TotalWords[intent] is the sum of WordCounts[intent] values.
	TotalWords map[Intent]int

	// Priors[intent] is the number of example sentences for that intent,
	// deliberately not normalized.
	Priors map[Intent]int

	// VocabularySize is the count of distinct tokens across all intents.
	VocabularySize int

	// TotalSamples is the sum of all priors.
	TotalSamples int
}

// BuildModel accumulates word counts, priors, and the global vocabulary from
// the knowledge source's intent corpus.
func BuildModel(src knowledge.Source) *Model {
	m := &Model{
		WordCounts: make(map[Intent]map[string]int, len(Intents)),
		TotalWords: make(map[Intent]int, len(Intents)),
		Priors:     make(map[Intent]int, len(Intents)),
	}
	vocabulary := make(map[string]struct{})

	for _, it := range Intents {
		m.WordCounts[it] = make(map[string]int)
		samples := src.IntentExamples(string(it))
		m.Priors[it] = len(samples)

		for _, sample := range samples {
			for _, token := range Tokenize(sample, src) {
				vocabulary[token] = struct{}{}
				m.WordCounts[it][token]++
				m.TotalWords[it]++
			}
		}
	}

	m.VocabularySize = len(vocabulary)
	for _, it := range Intents {
		m.TotalSamples += m.Priors[it]
	}
	return m
}
