package style

import (
	"regexp"
	"strings"

	"shopmind/internal/intent"
	"shopmind/internal/logging"
)

// =============================================================================
// STYLE PROFILE - per-shopper communication preferences
// =============================================================================

// alpha is the EMA smoothing factor for every trait update.
const alpha = 0.25

// Profile tracks how a shopper communicates so replies can adapt in tone and
// depth. All trait values live in [0, 1].
type Profile struct {
	MessagesSeen        int                   `json:"messagesSeen"`
	VerbosityPreference float64               `json:"verbosityPreference"`
	FormalityPreference float64               `json:"formalityPreference"`
	MathAffinity        float64               `json:"mathAffinity"`
	FrustrationLevel    float64               `json:"frustrationLevel"`
	IntentCounts        map[intent.Intent]int `json:"intentCounts"`
}

// DefaultProfile is the starting point for shoppers with no history.
func DefaultProfile() Profile {
	counts := make(map[intent.Intent]int, len(intent.Intents))
	for _, it := range intent.Intents {
		counts[it] = 0
	}
	return Profile{
		MessagesSeen:        0,
		VerbosityPreference: 0.5,
		FormalityPreference: 0.5,
		MathAffinity:        0.5,
		FrustrationLevel:    0,
		IntentCounts:        counts,
	}
}

// Raw is the wire form of a persisted profile. Pointer fields distinguish
// "absent" from "zero" so that a stored frustrationLevel of 0 round-trips
// while a missing verbosityPreference falls back to 0.5.
type Raw struct {
	MessagesSeen        *int                  `json:"messagesSeen"`
	VerbosityPreference *float64              `json:"verbosityPreference"`
	FormalityPreference *float64              `json:"formalityPreference"`
	MathAffinity        *float64              `json:"mathAffinity"`
	FrustrationLevel    *float64              `json:"frustrationLevel"`
	IntentCounts        map[intent.Intent]int `json:"intentCounts"`
}

// Normalize coerces a possibly partial or malformed persisted profile into a
// fully populated one. Unknown intent keys are dropped, missing ones default
// to 0, and every trait is clamped back into range.
func (r Raw) Normalize() Profile {
	p := DefaultProfile()
	if r.MessagesSeen != nil && *r.MessagesSeen > 0 {
		p.MessagesSeen = *r.MessagesSeen
	}
	if r.VerbosityPreference != nil {
		p.VerbosityPreference = clamp01(*r.VerbosityPreference)
	}
	if r.FormalityPreference != nil {
		p.FormalityPreference = clamp01(*r.FormalityPreference)
	}
	if r.MathAffinity != nil {
		p.MathAffinity = clamp01(*r.MathAffinity)
	}
	if r.FrustrationLevel != nil {
		p.FrustrationLevel = clamp01(*r.FrustrationLevel)
	}
	for it, n := range r.IntentCounts {
		if intent.Valid(string(it)) && n > 0 {
			p.IntentCounts[it] = n
		}
	}
	return p
}

// Clone returns a deep copy so callers can update without aliasing the
// stored map.
func (p Profile) Clone() Profile {
	counts := make(map[intent.Intent]int, len(p.IntentCounts))
	for it, n := range p.IntentCounts {
		counts[it] = n
	}
	p.IntentCounts = counts
	return p
}

var (
	detailPattern  = regexp.MustCompile(`\b(explain|why|detail|detailed|compare|analysis|pros|cons|breakdown)\b`)
	formalPattern  = regexp.MustCompile(`\b(please|could you|would you|kindly)\b`)
	mathPattern    = regexp.MustCompile(`\b(statistics|probability|math|mean|median|sigma|distribution|bayes|score|confidence)\b`)
	urgencyPattern = regexp.MustCompile(`\b(now|immediately|asap)\b`)
)

var frustrationTerms = []string{
	"frustrated",
	"annoyed",
	"angry",
	"this sucks",
	"useless",
	"dumb",
	"stupid",
	"hate",
	"wtf",
	"why is this",
	"not working",
	"call a real person",
}

// Update blends the current message's signals into the profile and records
// the classified intent. It is a pure function of (profile, message, intent).
func Update(p Profile, message string, it intent.Intent) Profile {
	text := strings.ToLower(message)

	lengthSignal := clamp01(float64(len(message)) / 220)
	detailSignal := 0.0
	if detailPattern.MatchString(text) {
		detailSignal = 1
	}
	shortSignal := 0.0
	if len(message) < 35 {
		shortSignal = 1
	}
	formalSignal := 0.2
	if formalPattern.MatchString(text) {
		formalSignal = 1
	}
	mathSignal := 0.0
	if mathPattern.MatchString(text) {
		mathSignal = 1
	}
	frustrationSignal := FrustrationSignal(message)

	next := p.Clone()
	next.MessagesSeen = p.MessagesSeen + 1
	next.VerbosityPreference = clamp01(
		p.VerbosityPreference*(1-alpha) + (lengthSignal*0.6+detailSignal*0.5-shortSignal*0.2)*alpha)
	next.FormalityPreference = clamp01(p.FormalityPreference*(1-alpha) + formalSignal*alpha)
	next.MathAffinity = clamp01(p.MathAffinity*(1-alpha) + mathSignal*alpha)
	next.FrustrationLevel = clamp01(p.FrustrationLevel*(1-alpha) + frustrationSignal*alpha)
	next.IntentCounts[it] = p.IntentCounts[it] + 1

	logging.Style("profile update intent=%s verbosity=%.3f formality=%.3f math=%.3f frustration=%.3f seen=%d",
		it, next.VerbosityPreference, next.FormalityPreference, next.MathAffinity,
		next.FrustrationLevel, next.MessagesSeen)
	return next
}

// FrustrationSignal scores the frustration content of a single message.
func FrustrationSignal(message string) float64 {
	text := strings.ToLower(message)
	signal := 0.0
	for _, term := range frustrationTerms {
		if strings.Contains(text, term) {
			signal += 0.75
			break
		}
	}
	if strings.Contains(text, "!") {
		signal += 0.1
	}
	if urgencyPattern.MatchString(text) {
		signal += 0.1
	}
	return clamp01(signal)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
