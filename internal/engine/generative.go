package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"shopmind/internal/catalog"
	"shopmind/internal/compose"
	"shopmind/internal/entity"
	"shopmind/internal/intent"
	"shopmind/internal/logging"
	"shopmind/internal/profile"
	"shopmind/internal/rank"
	"shopmind/internal/style"
)

// =============================================================================
// GENERATIVE OVERRIDE - full LLM turn with deterministic fallback
// =============================================================================

// GenerativeOverride delegates intent, product selection, and the reply to
// the model. The deterministic engine is the mandatory fallback; any model
// failure routes the turn through it unchanged.
type GenerativeOverride struct {
	generator ReplyGenerator
	searcher  catalog.Searcher
	profiles  profile.Store
	fallback  *Deterministic
}

// NewGenerativeOverride wires the override around an existing deterministic
// engine.
func NewGenerativeOverride(generator ReplyGenerator, searcher catalog.Searcher, profiles profile.Store, fallback *Deterministic) *GenerativeOverride {
	return &GenerativeOverride{
		generator: generator,
		searcher:  searcher,
		profiles:  profiles,
		fallback:  fallback,
	}
}

// Respond runs one generative turn, falling back to the deterministic
// pipeline on any model failure.
func (e *GenerativeOverride) Respond(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}

	profileID := req.ProfileID
	if profileID == "" {
		profileID = uuid.NewString()
	}

	current, err := e.profiles.Load(ctx, profileID)
	if err != nil {
		logging.EngineWarn("profile load failed for %s, using defaults: %v", profileID, err)
	}

	catalogSnapshot, err := e.searcher.Search(ctx, "", "", "", 100)
	if err != nil {
		logging.EngineWarn("catalog snapshot failed, treating as empty: %v", err)
		catalogSnapshot = nil
	}

	result, err := e.generator.FullConversation(ctx, message, catalogSnapshot)
	if err != nil {
		logging.EngineWarn("generative turn failed, using deterministic fallback: %v", err)
		return e.fallback.Respond(ctx, Request{Message: message, ProfileID: profileID})
	}

	it := intent.Fallback
	if intent.Valid(result.Intent) {
		it = intent.Intent(result.Intent)
	}

	selected := make(map[int64]struct{}, len(result.ProductIDs))
	for _, id := range result.ProductIDs {
		selected[id] = struct{}{}
	}
	var products []catalog.ProductHit
	for _, p := range catalogSnapshot {
		if _, ok := selected[p.ID]; ok {
			products = append(products, p)
		}
	}

	next := style.Update(current, message, it)
	ents := entity.Extract(message, e.fallback.source)
	stats := rank.Stats(products)

	// The model commits to its selection, so confidence is fixed and the
	// distribution collapses onto the reported intent.
	distribution := make(map[intent.Intent]float64, len(intent.Intents))
	for _, candidate := range intent.Intents {
		distribution[candidate] = 0
	}
	distribution[it] = 1

	session := Session(profileID)
	links := compose.QuickLinks(message, it, products, ents, session)
	suggestions := compose.Suggestions(next)

	if err := e.profiles.Save(ctx, profileID, next); err != nil {
		logging.EngineWarn("profile save failed for %s: %v", profileID, err)
	}

	logging.Engine("generative turn intent=%s products=%d profile=%s", it, len(products), profileID)

	return Response{
		Reply:       result.Reply,
		Intent:      it,
		Confidence:  0.85,
		Products:    products,
		QuickLinks:  links,
		Suggestions: suggestions,
		Metadata: Metadata{
			SearchTerm:         ents.SearchTerm,
			Category:           ents.Category,
			Color:              ents.Color,
			Budget:             ents.Budget,
			Characteristics:    ents.Characteristics,
			IntentDistribution: distribution,
			ProductStats:       stats,
			StyleProfile:       next,
			ProfileID:          profileID,
			Session:            session,
			Deterministic:      false,
			Mode:               "llm",
		},
	}, nil
}
