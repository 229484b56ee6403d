// Package sqlite provides SQLite-backed persistence for the web service.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/dseza/portal/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/dseza/portal/internal/services/web/storage"
	"github.com/dseza/portal/internal/services/web/storage/sqlite/migrations"
)

// Store persists visitor preferences in a SQLite database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a web SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.Files, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetVisitorPreference loads a visitor's stored language.
func (s *Store) GetVisitorPreference(ctx context.Context, visitorID string) (webstorage.VisitorPreference, bool, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return webstorage.VisitorPreference{}, false, fmt.Errorf("visitor id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT visitor_id, language, seen_at FROM visitor_preferences WHERE visitor_id = ?`,
		visitorID,
	)
	var pref webstorage.VisitorPreference
	var seenAt int64
	if err := row.Scan(&pref.VisitorID, &pref.Language, &seenAt); err != nil {
		if err == sql.ErrNoRows {
			return webstorage.VisitorPreference{}, false, nil
		}
		return webstorage.VisitorPreference{}, false, fmt.Errorf("scan visitor preference: %w", err)
	}
	pref.SeenAt = time.Unix(seenAt, 0).UTC()
	return pref, true, nil
}

// PutVisitorPreference upserts a visitor's language, last-seen-wins.
func (s *Store) PutVisitorPreference(ctx context.Context, pref webstorage.VisitorPreference) error {
	visitorID := strings.TrimSpace(pref.VisitorID)
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}
	if strings.TrimSpace(pref.Language) == "" {
		return fmt.Errorf("language is required")
	}
	seenAt := pref.SeenAt
	if seenAt.IsZero() {
		seenAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO visitor_preferences (visitor_id, language, seen_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(visitor_id) DO UPDATE SET language = excluded.language, seen_at = excluded.seen_at`,
		visitorID, pref.Language, seenAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert visitor preference: %w", err)
	}
	return nil
}
