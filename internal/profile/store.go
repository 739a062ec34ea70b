// Package profile persists shopper style profiles across turns. Every
// backend follows the same contract: loads that fail or miss return a
// default profile, and saves are best-effort.
package profile

import (
	"context"

	"shopmind/internal/style"
)

// Store loads and saves style profiles keyed by profile ID.
type Store interface {
	// Load returns the stored profile, or a normalized default when the
	// profile is missing or the backend is unavailable. The error is
	// informational; the returned profile is always usable.
	Load(ctx context.Context, profileID string) (style.Profile, error)

	// Save persists the profile. Failures must not fail the caller's turn.
	Save(ctx context.Context, profileID string, p style.Profile) error
}
