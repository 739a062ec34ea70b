package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopmind/internal/logging"
	"shopmind/internal/style"
)

// =============================================================================
// HTTP STORE - storefront backend profile API
// =============================================================================

// HTTPStore persists profiles through the storefront backend's assistant
// profile endpoints.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore targets the backend at baseURL, e.g. "http://localhost:4000".
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Load fetches the profile from the backend. Any transport or decode failure
// degrades to defaults.
func (h *HTTPStore) Load(ctx context.Context, profileID string) (style.Profile, error) {
	endpoint := h.baseURL + "/api/assistant/profile/" + url.PathEscape(profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return style.DefaultProfile(), err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		logging.ProfileWarn("load %s failed, using defaults: %v", profileID, err)
		return style.DefaultProfile(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return style.DefaultProfile(), nil
	}

	var payload struct {
		Profile style.Raw `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logging.ProfileWarn("decode profile %s failed, using defaults: %v", profileID, err)
		return style.DefaultProfile(), nil
	}
	return payload.Profile.Normalize(), nil
}

// Save posts the profile to the backend.
func (h *HTTPStore) Save(ctx context.Context, profileID string, p style.Profile) error {
	body, err := json.Marshal(map[string]interface{}{
		"profile_id": profileID,
		"profile":    p,
	})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.baseURL+"/api/assistant/profile", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("save profile %s: backend returned %s", profileID, resp.Status)
	}
	return nil
}
