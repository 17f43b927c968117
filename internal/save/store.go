package save

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dkovalev/tui-jigsaw/internal/catalog"
)

// documentKey is the single storage key the save document lives under.
const documentKey = "save"

// legacyKeys are the piecemeal keys older builds wrote individually.
// They are only consulted when the document key is absent.
var legacyKeys = []string{"currentLevel", "coins", "musicOn", "sfxOn"}

// Store manages the SQLite database holding the save document.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("save: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadDocument reads the save document, forward-migrating it onto the
// current schema. When the document key is absent, legacy piecemeal keys
// are merged onto defaults instead. Read problems are never fatal; the
// worst case is a fresh default document.
func (s *Store) LoadDocument(cat *catalog.Catalog, now time.Time) *Document {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", documentKey).Scan(&value)
	if err == nil {
		return Migrate([]byte(value), cat, now)
	}
	if err != sql.ErrNoRows {
		return Defaults()
	}
	return FromLegacy(s.readLegacy(), cat, now)
}

func (s *Store) readLegacy() map[string]string {
	values := make(map[string]string, len(legacyKeys))
	for _, key := range legacyKeys {
		var v string
		if err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v); err == nil {
			values[key] = v
		}
	}
	return values
}

// SaveDocument serializes the document under the single storage key.
func (s *Store) SaveDocument(d *Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("save: cannot marshal document: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		documentKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save: cannot write document: %w", err)
	}
	return nil
}

// WriteLegacy stores a piecemeal key. Exists for upgrade-path tests; new
// code always writes the single document.
func (s *Store) WriteLegacy(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save: cannot write key %s: %w", key, err)
	}
	return nil
}
