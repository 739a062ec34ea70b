package intent

import (
	"math"
	"regexp"
	"strings"

	"shopmind/internal/knowledge"
	"shopmind/internal/logging"
)

// Rule boosts: any pattern match against the lowercased raw message adds a
// fixed +1.2 to that intent's log score, once per intent no matter how many
// of its patterns match.
const ruleBoost = 1.2

// Buy-phrase hits add a further +1.0 to product_search only.
const buyBoost = 1.0

var ruleBoosts = map[Intent][]*regexp.Regexp{
	Greeting: {
		regexp.MustCompile(`\b(hi|hello|hey|good morning|good evening)\b`),
	},
	ProductSearch: {
		regexp.MustCompile(`\b(product|search|find|buy|purchase|shop|looking for|show me)\b`),
	},
	CategoryBrowse: {
		regexp.MustCompile(`\b(category|categories|browse|collection|show .* (shirt|dress|jacket|shoes|pants))\b`),
	},
	Pricing: {
		regexp.MustCompile(`\b(price|cost|budget|cheap|expensive|under\s+\d+|below\s+\d+)\b`),
	},
	Recommendation: {
		regexp.MustCompile(`\b(recommend|suggest|similar|best for me|for you)\b`),
	},
	SiteHelp: {
		regexp.MustCompile(`\b(order|cart|checkout|favorite|favorites|ticket|tickets|account|login|sign in|profile|role|dev mode|developer mode|token|session|expire|expiry|testing|tests?|qa|how do i)\b`),
	},
	Fallback: {},
}

// Classification is the full classifier output for one message.
type Classification struct {
	Intent       Intent             `json:"intent"`
	Confidence   float64            `json:"confidence"`
	Distribution map[Intent]float64 `json:"distribution"`
}

// Classifier scores messages against an immutable Model. It never fails: an
// empty or all-stopword message still yields a valid distribution because
// the priors alone differentiate intents.
type Classifier struct {
	model *Model
	src   knowledge.Source
}

// NewClassifier creates a classifier over the given model and knowledge
// source.
func NewClassifier(model *Model, src knowledge.Source) *Classifier {
	return &Classifier{model: model, src: src}
}

// Classify runs Naive Bayes with Laplace smoothing, applies rule and
// buy-phrase boosts, and softmax-normalizes the scores. Confidence is the
// winning probability rounded to 3 decimal places.
func (c *Classifier) Classify(message string) Classification {
	text := strings.ToLower(message)
	tokens := Tokenize(message, c.src)

	logScores := make(map[Intent]float64, len(Intents))
	for _, it := range Intents {
		prior := float64(c.model.Priors[it]) / float64(max(c.model.TotalSamples, 1))
		if prior <= 0 {
			prior = 1e-9
		}
		score := math.Log(prior)

		// Laplace smoothing: unseen tokens contribute only the smoothing term.
		denom := float64(c.model.TotalWords[it] + c.model.VocabularySize)
		if denom == 0 {
			denom = 1
		}
		for _, token := range tokens {
			count := c.model.WordCounts[it][token]
			score += math.Log(float64(count+1) / denom)
		}

		for _, pattern := range ruleBoosts[it] {
			if pattern.MatchString(text) {
				score += ruleBoost
				break
			}
		}

		if it == ProductSearch {
			for _, phrase := range BuyPhrases {
				if strings.Contains(text, phrase) {
					score += buyBoost
					break
				}
			}
		}

		logScores[it] = score
	}

	distribution := softmax(logScores)

	// Argmax with ties resolved by declaration order.
	best := Intents[0]
	for _, it := range Intents[1:] {
		if distribution[it] > distribution[best] {
			best = it
		}
	}

	confidence := math.Round(distribution[best]*1000) / 1000
	logging.IntentDebug("classified %q as %s (%.3f)", message, best, confidence)

	return Classification{
		Intent:       best,
		Confidence:   confidence,
		Distribution: distribution,
	}
}

// softmax converts log scores to probabilities, subtracting the max first
// for numerical stability.
func softmax(logScores map[Intent]float64) map[Intent]float64 {
	maxLog := math.Inf(-1)
	for _, it := range Intents {
		if logScores[it] > maxLog {
			maxLog = logScores[it]
		}
	}

	exp := make(map[Intent]float64, len(Intents))
	var sum float64
	for _, it := range Intents {
		v := math.Exp(logScores[it] - maxLog)
		exp[it] = v
		sum += v
	}
	if sum == 0 {
		sum = 1
	}

	distribution := make(map[Intent]float64, len(Intents))
	for _, it := range Intents {
		distribution[it] = exp[it] / sum
	}
	return distribution
}
