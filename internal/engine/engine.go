// Package engine orchestrates one conversational turn: classify, extract,
// fetch and rank products, adapt the style profile, and compose the reply.
package engine

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shopmind/internal/catalog"
	"shopmind/internal/compose"
	"shopmind/internal/entity"
	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
	"shopmind/internal/llm"
	"shopmind/internal/logging"
	"shopmind/internal/profile"
	"shopmind/internal/rank"
	"shopmind/internal/style"
)

// ErrEmptyMessage is returned when the trimmed message is empty. It is the
// only client error the engine produces; every other failure degrades.
var ErrEmptyMessage = errors.New("message is required")

// Request is one shopper turn.
type Request struct {
	Message   string `json:"message"`
	ProfileID string `json:"profileId,omitempty"`
}

// Metadata carries the analysis behind a reply for debugging and UI use.
type Metadata struct {
	SearchTerm         string                    `json:"searchTerm"`
	Category           string                    `json:"category"`
	Color              string                    `json:"color"`
	Budget             *float64                  `json:"budget"`
	Characteristics    []string                  `json:"characteristics"`
	IntentDistribution map[intent.Intent]float64 `json:"intentDistribution"`
	ProductStats       rank.ProductStats         `json:"productStats"`
	StyleProfile       style.Profile             `json:"styleProfile"`
	ProfileID          string                    `json:"profileId"`
	Session            string                    `json:"assistantSession"`
	Deterministic      bool                      `json:"deterministic"`
	Mode               string                    `json:"assistantMode"`
}

// Response is the full emitted shape for one turn.
type Response struct {
	Reply      string              `json:"reply"`
	Intent     intent.Intent       `json:"intent"`
	Confidence float64             `json:"confidence"`
	Products   []catalog.ProductHit `json:"products"`
	QuickLinks []compose.QuickLink `json:"quickLinks"`
	Suggestions []string           `json:"suggestions"`
	Metadata   Metadata            `json:"metadata"`
}

// Engine produces a response for a shopper turn. Implementations must be
// safe for concurrent use.
type Engine interface {
	Respond(ctx context.Context, req Request) (Response, error)
}

// ReplyGenerator is the optional generative surface the engines call. Both
// hooks are best-effort; a nil ReplyGenerator disables them.
type ReplyGenerator interface {
	EmptyResultReply(ctx context.Context, message, searchTerm, category, color string, budget *float64) (string, error)
	FullConversation(ctx context.Context, message string, products []catalog.ProductHit) (llm.ConversationResult, error)
}

var showProductsPattern = intentShowPattern()

func intentShowPattern() func(string) bool {
	keywords := []string{"show", "find", "list", "recommend", "similar", "product", "products", "item", "items"}
	return func(text string) bool {
		for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
			return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
		}) {
			for _, kw := range keywords {
				if tok == kw {
					return true
				}
			}
		}
		return false
	}
}

// shouldShowProducts decides whether the turn warrants a catalog fetch.
func shouldShowProducts(it intent.Intent, message string) bool {
	if it == intent.ProductSearch || it == intent.CategoryBrowse || it == intent.Pricing {
		return true
	}
	return showProductsPattern(strings.ToLower(message))
}

// Session derives a short session token tied to the profile and the moment
// of the turn.
func Session(profileID string) string {
	prefix := profileID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// =============================================================================
// DETERMINISTIC ENGINE
// =============================================================================

// Deterministic is the always-present engine: pure functions over the
// message, catalog, and profile, with the optional generator used only for
// empty-result messaging.
type Deterministic struct {
	source     knowledge.Source
	classifier *intent.Classifier
	fetcher    *rank.Fetcher
	profiles   profile.Store
	generator  ReplyGenerator // nil disables the empty-result hook
}

// NewDeterministic wires the deterministic engine. generator may be nil.
func NewDeterministic(source knowledge.Source, searcher catalog.Searcher, profiles profile.Store, generator ReplyGenerator) *Deterministic {
	return &Deterministic{
		source:     source,
		classifier: intent.NewClassifier(intent.BuildModel(source), source),
		fetcher:    rank.NewFetcher(searcher),
		profiles:   profiles,
		generator:  generator,
	}
}

// Respond runs the full deterministic pipeline for one turn.
func (e *Deterministic) Respond(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}

	timer := logging.StartTimer(logging.CategoryEngine, "turn")
	defer timer.Stop()

	profileID := req.ProfileID
	if profileID == "" {
		profileID = uuid.NewString()
	}

	cls := e.classifier.Classify(message)
	ents := entity.Extract(message, e.source)
	showProducts := shouldShowProducts(cls.Intent, message)

	var (
		current    style.Profile
		candidates []catalog.ProductHit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := e.profiles.Load(gctx, profileID)
		if err != nil {
			logging.EngineWarn("profile load failed for %s, using defaults: %v", profileID, err)
		}
		current = loaded
		return nil
	})
	if showProducts {
		g.Go(func() error {
			candidates = e.fetcher.Fetch(gctx, ents)
			return nil
		})
	}
	_ = g.Wait()

	var products []catalog.ProductHit
	if showProducts {
		products = rank.Products(rank.Rank(candidates, message, ents, e.source))
	}
	stats := rank.Stats(products)

	next := style.Update(current, message, cls.Intent)

	baseReply := e.baseReply(ctx, message, cls.Intent, ents, products, showProducts, next)
	narrative := compose.StatsNarrative(stats, cls.Intent)
	reply := compose.ConversationalReply(message, cls.Intent, cls.Confidence, baseReply, narrative, next)

	session := Session(profileID)
	links := compose.QuickLinks(message, cls.Intent, products, ents, session)
	suggestions := compose.Suggestions(next)

	if err := e.profiles.Save(ctx, profileID, next); err != nil {
		logging.EngineWarn("profile save failed for %s: %v", profileID, err)
	}

	logging.Engine("turn intent=%s confidence=%.3f products=%d profile=%s",
		cls.Intent, cls.Confidence, len(products), profileID)

	return Response{
		Reply:       reply,
		Intent:      cls.Intent,
		Confidence:  cls.Confidence,
		Products:    products,
		QuickLinks:  links,
		Suggestions: suggestions,
		Metadata: Metadata{
			SearchTerm:         ents.SearchTerm,
			Category:           ents.Category,
			Color:              ents.Color,
			Budget:             ents.Budget,
			Characteristics:    ents.Characteristics,
			IntentDistribution: cls.Distribution,
			ProductStats:       stats,
			StyleProfile:       next,
			ProfileID:          profileID,
			Session:            session,
			Deterministic:      true,
			Mode:               "deterministic",
		},
	}, nil
}

const noResultsReply = "I could not find matching products. Try a broader search term, drop the color or budget filter, or browse all products to see what is in stock."

func (e *Deterministic) baseReply(ctx context.Context, message string, it intent.Intent, ents entity.Entities, products []catalog.ProductHit, showProducts bool, profile style.Profile) string {
	switch {
	case it == intent.Greeting:
		return compose.GreetingReply(message, profile, e.source)
	case it == intent.SiteHelp:
		return compose.SiteHelpReply(message, e.source)
	case showProducts && len(products) > 0:
		return compose.FormatProducts(products)
	case showProducts:
		if e.generator != nil {
			if reply, err := e.generator.EmptyResultReply(ctx, message, ents.SearchTerm, ents.Category, ents.Color, ents.Budget); err == nil {
				return reply
			}
		}
		return noResultsReply
	default:
		return compose.FallbackReply(message, profile, e.source)
	}
}
