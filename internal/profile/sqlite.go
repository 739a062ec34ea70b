package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"shopmind/internal/logging"
	"shopmind/internal/style"
)

// =============================================================================
// SQLITE STORE - durable local profile persistence
// =============================================================================

// SQLiteStore persists profiles as JSON rows in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the profile database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open profile database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		profile_id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize profile schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the stored profile, or defaults when missing or malformed.
func (s *SQLiteStore) Load(ctx context.Context, profileID string) (style.Profile, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM profiles WHERE profile_id = ?`, profileID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return style.DefaultProfile(), nil
	}
	if err != nil {
		logging.ProfileWarn("load %s failed, using defaults: %v", profileID, err)
		return style.DefaultProfile(), err
	}

	var raw style.Raw
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		logging.ProfileWarn("stored profile %s is malformed, using defaults: %v", profileID, err)
		return style.DefaultProfile(), nil
	}
	return raw.Normalize(), nil
}

// Save upserts the profile row.
func (s *SQLiteStore) Save(ctx context.Context, profileID string, p style.Profile) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (profile_id, profile, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(profile_id) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`,
		profileID, string(blob), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profileID, err)
	}
	logging.Profile("saved profile %s", profileID)
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
