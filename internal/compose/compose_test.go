package compose

import (
	"strings"
	"testing"

	"shopmind/internal/catalog"
	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
	"shopmind/internal/rank"
	"shopmind/internal/style"
)

func TestPickVariantIsDeterministic(t *testing.T) {
	options := []string{"a", "b", "c"}
	first := PickVariant("show me blue jackets", options)
	for i := 0; i < 10; i++ {
		if got := PickVariant("show me blue jackets", options); got != first {
			t.Fatalf("PickVariant varied across calls: %q vs %q", got, first)
		}
	}
	if PickVariant("anything", nil) != "" {
		t.Fatal("PickVariant with no options should return empty string")
	}
}

func TestHashStringIsNonNegative(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", strings.Repeat("overflow the rolling hash ", 40), "émoji ⭐"} {
		if HashString(s) < 0 {
			t.Errorf("HashString(%q) negative", s)
		}
	}
}

func TestConversationalReplyIsByteIdentical(t *testing.T) {
	profile := style.DefaultProfile()
	stats := rank.ProductStats{Count: 3, MinPrice: 20, MaxPrice: 90, MedianPrice: 50}
	narrative := StatsNarrative(stats, intent.ProductSearch)

	a := ConversationalReply("find jackets", intent.ProductSearch, 0.82, "base", narrative, profile)
	b := ConversationalReply("find jackets", intent.ProductSearch, 0.82, "base", narrative, profile)
	if a != b {
		t.Fatalf("identical inputs produced different replies:\n%q\n%q", a, b)
	}
}

func TestConversationalReplyApologeticOpener(t *testing.T) {
	profile := style.DefaultProfile()
	profile.FrustrationLevel = 0.6

	reply := ConversationalReply("this is not working!", intent.Fallback, 0.4, "base", "", profile)

	opener := strings.SplitN(reply, "\n\n", 2)[0]
	found := false
	for _, o := range apologeticOpeners {
		if opener == o {
			found = true
		}
	}
	if !found {
		t.Fatalf("opener %q not from the apologetic set", opener)
	}
	if !strings.Contains(reply, "top 3 choices") {
		t.Errorf("frustrated fallback should ask for one target + budget, got:\n%s", reply)
	}
	if !strings.Contains(reply, "step-by-step") {
		t.Errorf("frustrated reply should offer step-by-step mode, got:\n%s", reply)
	}
	if strings.Contains(reply, "Intent confidence") {
		t.Errorf("frustrated reply must omit the confidence line, got:\n%s", reply)
	}
}

func TestConversationalReplyFormalOpener(t *testing.T) {
	profile := style.DefaultProfile()
	profile.FormalityPreference = 0.7
	profile.VerbosityPreference = 0.2

	reply := ConversationalReply("please find jackets", intent.ProductSearch, 0.9, "base", "", profile)
	opener := strings.SplitN(reply, "\n\n", 2)[0]
	found := false
	for _, o := range formalOpeners {
		if opener == o {
			found = true
		}
	}
	if !found {
		t.Fatalf("opener %q not from the formal set", opener)
	}
}

func TestConversationalReplyConfidenceLinePlacement(t *testing.T) {
	profile := style.DefaultProfile()
	profile.VerbosityPreference = 0.5

	reply := ConversationalReply("find jackets", intent.ProductSearch, 0.9, "the base reply", "", profile)
	parts := strings.Split(reply, "\n\n")
	if len(parts) < 3 {
		t.Fatalf("expected opener, confidence line, and base reply, got %d parts", len(parts))
	}
	if !strings.HasPrefix(parts[1], "Intent confidence is strong") {
		t.Errorf("part 1 = %q, want strong confidence line", parts[1])
	}
	if parts[2] != "the base reply" {
		t.Errorf("part 2 = %q, want base reply after confidence line", parts[2])
	}

	moderate := ConversationalReply("find jackets", intent.ProductSearch, 0.6, "the base reply", "", profile)
	if !strings.Contains(moderate, "Intent confidence is moderate") {
		t.Errorf("confidence 0.6 should produce the moderate line, got:\n%s", moderate)
	}
}

func TestConversationalReplyDeduplicatesParts(t *testing.T) {
	profile := style.DefaultProfile()
	profile.VerbosityPreference = 0.2

	opener := PickVariant("msg", casualOpeners)
	reply := ConversationalReply("msg", intent.ProductSearch, 0.9, opener, "", profile)
	if strings.Count(reply, opener) != 1 {
		t.Fatalf("duplicate part not removed:\n%s", reply)
	}
}

func TestStatsNarrativeByIntent(t *testing.T) {
	stats := rank.ProductStats{
		Count: 4, MeanPrice: 55.5, MedianPrice: 60, StdPrice: 12.25,
		MinPrice: 30, MaxPrice: 80, MeanRating: 4.25, CategoryDiversity: 2,
	}

	if got := StatsNarrative(stats, intent.Pricing); got != "Price stats: median $60.00, mean $55.50, spread σ=$12.25." {
		t.Errorf("pricing narrative = %q", got)
	}
	if got := StatsNarrative(stats, intent.Recommendation); got != "Data signal: average rating 4.25 across 4 items with 2 category buckets." {
		t.Errorf("recommendation narrative = %q", got)
	}
	if got := StatsNarrative(stats, intent.ProductSearch); got != "Quick stats: $30.00 to $80.00 (median $60.00)." {
		t.Errorf("default narrative = %q", got)
	}
	if got := StatsNarrative(rank.ProductStats{}, intent.Pricing); got != "" {
		t.Errorf("empty stats narrative = %q, want empty", got)
	}
}

func TestFormatProducts(t *testing.T) {
	r := 4.5
	products := []catalog.ProductHit{
		{ID: 1, Name: "Trail Jacket", Category: "Jacket", Price: 89.9, RatingAvg: &r},
		{ID: 2, Name: "City Coat", Category: "Jacket", Price: 120},
	}

	got := FormatProducts(products)
	want := "Here are some options:\n" +
		"- Trail Jacket (Jacket) — $89.90 | ⭐ 4.5\n" +
		"- City Coat (Jacket) — $120.00"
	if got != want {
		t.Errorf("FormatProducts:\ngot  %q\nwant %q", got, want)
	}
}

func TestFormatProductsCapsAtFive(t *testing.T) {
	var products []catalog.ProductHit
	for i := int64(1); i <= 9; i++ {
		products = append(products, catalog.ProductHit{ID: i, Name: "P", Category: "C", Price: 10})
	}
	got := FormatProducts(products)
	if lines := strings.Count(got, "\n"); lines != 5 {
		t.Errorf("expected 5 product lines, got %d:\n%s", lines, got)
	}
}

func TestGreetingReplyUsesKnowledgeTemplates(t *testing.T) {
	src := templateSource{templates: map[string][]string{
		"greeting/casual": {"custom hello"},
	}}
	profile := style.DefaultProfile()

	if got := GreetingReply("hi", profile, src); got != "custom hello" {
		t.Errorf("GreetingReply = %q, want knowledge template", got)
	}

	// Missing templates fall back to the compiled-in sets.
	if got := GreetingReply("hi", profile, templateSource{}); got == "" {
		t.Error("GreetingReply fell back to empty string")
	}
}

type templateSource struct {
	knowledge.Source
	templates map[string][]string
}

func (s templateSource) ResponseTemplates(kind, style string) []string {
	return s.templates[kind+"/"+style]
}
