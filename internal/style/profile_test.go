package style

import (
	"math"
	"testing"

	"shopmind/internal/intent"
)

func almost(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.MessagesSeen != 0 || p.FrustrationLevel != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	almost(t, p.VerbosityPreference, 0.5, "VerbosityPreference")
	almost(t, p.FormalityPreference, 0.5, "FormalityPreference")
	almost(t, p.MathAffinity, 0.5, "MathAffinity")
	if len(p.IntentCounts) != len(intent.Intents) {
		t.Fatalf("IntentCounts has %d entries, want %d", len(p.IntentCounts), len(intent.Intents))
	}
}

func TestUpdateShortInformalMessage(t *testing.T) {
	next := Update(DefaultProfile(), "hi", intent.Greeting)

	// length 2: lengthSignal 2/220, shortSignal 1, no detail words.
	raw := (2.0/220)*0.6 + 0 - 0.2
	almost(t, next.VerbosityPreference, 0.5*0.75+raw*0.25, "VerbosityPreference")
	// informal default signal is 0.2, not 0.
	almost(t, next.FormalityPreference, 0.5*0.75+0.2*0.25, "FormalityPreference")
	almost(t, next.MathAffinity, 0.5*0.75, "MathAffinity")
	almost(t, next.FrustrationLevel, 0, "FrustrationLevel")

	if next.MessagesSeen != 1 {
		t.Errorf("MessagesSeen = %d, want 1", next.MessagesSeen)
	}
	if next.IntentCounts[intent.Greeting] != 1 {
		t.Errorf("IntentCounts[greeting] = %d, want 1", next.IntentCounts[intent.Greeting])
	}
}

func TestUpdateFormalMathMessage(t *testing.T) {
	msg := "Could you please explain the median price distribution in detail for these jackets?"
	next := Update(DefaultProfile(), msg, intent.Pricing)

	almost(t, next.FormalityPreference, 0.5*0.75+1*0.25, "FormalityPreference")
	almost(t, next.MathAffinity, 0.5*0.75+1*0.25, "MathAffinity")
	if next.IntentCounts[intent.Pricing] != 1 {
		t.Errorf("IntentCounts[pricing] = %d, want 1", next.IntentCounts[intent.Pricing])
	}
}

func TestFrustrationSignal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"this is fine", 0},
		{"this sucks", 0.75},
		{"this sucks!", 0.85},
		{"this sucks! fix it now", 0.95},
		{"I HATE THIS!!! fix it immediately", 0.95},
		{"wow!", 0.1},
	}

	for _, tt := range tests {
		if got := FrustrationSignal(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FrustrationSignal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUpdateClampsTraits(t *testing.T) {
	p := DefaultProfile()
	// Drive frustration up repeatedly; it must never leave [0, 1].
	for i := 0; i < 50; i++ {
		p = Update(p, "this is stupid! not working! fix it now!", intent.Fallback)
	}
	if p.FrustrationLevel < 0 || p.FrustrationLevel > 1 {
		t.Fatalf("FrustrationLevel = %v, out of range", p.FrustrationLevel)
	}
	if p.FrustrationLevel < 0.9 {
		t.Errorf("FrustrationLevel = %v, want near saturation after repeated anger", p.FrustrationLevel)
	}
}

func TestUpdateIsPure(t *testing.T) {
	base := DefaultProfile()
	a := Update(base, "recommend warm jackets", intent.Recommendation)
	b := Update(base, "recommend warm jackets", intent.Recommendation)

	if a.VerbosityPreference != b.VerbosityPreference || a.IntentCounts[intent.Recommendation] != b.IntentCounts[intent.Recommendation] {
		t.Fatalf("identical updates diverged: %+v vs %+v", a, b)
	}
	if base.IntentCounts[intent.Recommendation] != 0 {
		t.Fatalf("Update mutated its input profile")
	}
}

func TestNormalize(t *testing.T) {
	verbosity := 1.7
	frustration := -0.5
	raw := Raw{
		VerbosityPreference: &verbosity,
		FrustrationLevel:    &frustration,
		IntentCounts: map[intent.Intent]int{
			intent.Pricing:        3,
			intent.Intent("bogus"): 9,
		},
	}

	p := raw.Normalize()
	almost(t, p.VerbosityPreference, 1, "VerbosityPreference clamp")
	almost(t, p.FrustrationLevel, 0, "FrustrationLevel clamp")
	// Absent fields fall back to defaults rather than zero.
	almost(t, p.FormalityPreference, 0.5, "FormalityPreference default")
	if p.IntentCounts[intent.Pricing] != 3 {
		t.Errorf("IntentCounts[pricing] = %d, want 3", p.IntentCounts[intent.Pricing])
	}
	if _, ok := p.IntentCounts[intent.Intent("bogus")]; ok {
		t.Errorf("unknown intent key survived normalization")
	}
}
