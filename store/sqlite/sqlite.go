/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  An alternative to the JSON files in the data directory. Settings and
  recovery records are kept as JSON documents in two tables, so the rest of
  the program cannot tell the backends apart.

INTERFACES IMPLEMENTED:
  settings.Store: via Store.Settings()
  recovery.Store: via Store.Recovery()

KEY TABLES:
  user_settings:    At most one row (id = 1) holding the settings document
  recovery_records: name -> JSON document

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking. The
  ticker reads every second while the API writes occasionally.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Readers don't block the writer
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/salary-ticker.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  t := ticker.NewTicker(store.Settings(), recovery.NewOverrides(store.Recovery()), sink, signals)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - settings/store.go: File-backed settings
  - recovery/store.go: File-backed recovery records
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
)

// Store owns the database connection.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Single settings document
	CREATE TABLE IF NOT EXISTS user_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Named recovery documents (vacation-state, today-work-schedule, ...)
	CREATE TABLE IF NOT EXISTS recovery_records (
		name TEXT PRIMARY KEY,
		data_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Settings returns the settings.Store view of the database.
func (s *Store) Settings() *SettingsStore { return &SettingsStore{s: s} }

// Recovery returns the recovery.Store view of the database.
func (s *Store) Recovery() *RecoveryStore { return &RecoveryStore{s: s} }

// =============================================================================
// SETTINGS
// =============================================================================

type SettingsStore struct {
	s *Store
}

var _ settings.Store = (*SettingsStore)(nil)

func (ss *SettingsStore) Load(ctx context.Context) (*settings.UserSettings, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	var data string
	err := ss.s.db.QueryRowContext(ctx, `SELECT data_json FROM user_settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, settings.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	parsed, err := settings.Parse([]byte(data))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (ss *SettingsStore) Save(ctx context.Context, us settings.UserSettings) error {
	if err := us.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(us)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	_, err = ss.s.db.ExecContext(ctx, `
		INSERT INTO user_settings (id, data_json, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data_json = excluded.data_json, updated_at = excluded.updated_at`,
		string(data), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Reset deletes the settings row. Recovery records are left alone, matching
// the file backend which only removes the settings documents.
func (ss *SettingsStore) Reset(ctx context.Context) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	if _, err := ss.s.db.ExecContext(ctx, `DELETE FROM user_settings`); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}

// =============================================================================
// RECOVERY RECORDS
// =============================================================================

type RecoveryStore struct {
	s *Store
}

var _ recovery.Store = (*RecoveryStore)(nil)

func (rs *RecoveryStore) Load(ctx context.Context, name string) (json.RawMessage, error) {
	if err := recovery.ValidateName(name); err != nil {
		return nil, err
	}

	rs.s.mu.RLock()
	defer rs.s.mu.RUnlock()

	var data string
	err := rs.s.db.QueryRowContext(ctx, `SELECT data_json FROM recovery_records WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recovery.ErrFileNotFound
	}
	if err != nil {
		return nil, &recovery.Error{Kind: recovery.KindIO, Name: name, Message: "load failed", Err: err}
	}
	if !json.Valid([]byte(data)) {
		return nil, &recovery.Error{Kind: recovery.KindParse, Name: name, Message: "stored document is not valid JSON"}
	}
	return json.RawMessage(data), nil
}

func (rs *RecoveryStore) Save(ctx context.Context, name string, data json.RawMessage) error {
	if err := recovery.ValidateName(name); err != nil {
		return err
	}
	if err := recovery.ValidateData(name, data); err != nil {
		return err
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	_, err := rs.s.db.ExecContext(ctx, `
		INSERT INTO recovery_records (name, data_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data_json = excluded.data_json, updated_at = excluded.updated_at`,
		name, string(data), time.Now().Format(time.RFC3339))
	if err != nil {
		return &recovery.Error{Kind: recovery.KindIO, Name: name, Message: "save failed", Err: err}
	}
	return nil
}

func (rs *RecoveryStore) Delete(ctx context.Context, name string) error {
	if err := recovery.ValidateName(name); err != nil {
		return err
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	if _, err := rs.s.db.ExecContext(ctx, `DELETE FROM recovery_records WHERE name = ?`, name); err != nil {
		return &recovery.Error{Kind: recovery.KindIO, Name: name, Message: "delete failed", Err: err}
	}
	return nil
}
