package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store caches raw model responses in a SQLite database so reruns do not
// repeat upstream generation calls.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with SQLite database
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "coinbrief.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	responsesTable := `
	CREATE TABLE IF NOT EXISTS responses (
		symbol TEXT NOT NULL,
		mode TEXT NOT NULL,
		raw_text TEXT,
		model_used TEXT,
		date_generated DATETIME,
		PRIMARY KEY (symbol, mode)
	);`

	if _, err := s.db.Exec(responsesTable); err != nil {
		return fmt.Errorf("failed to create responses table: %w", err)
	}
	return nil
}

// GetResponse returns a cached raw model response for (symbol, mode).
// The second return value reports whether a cached entry existed.
func (s *Store) GetResponse(symbol, mode string) (string, bool, error) {
	var raw string
	err := s.db.QueryRow(
		"SELECT raw_text FROM responses WHERE symbol = ? AND mode = ?",
		symbol, mode,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cached response: %w", err)
	}
	return raw, true, nil
}

// SaveResponse caches a raw model response for (symbol, mode).
func (s *Store) SaveResponse(symbol, mode, model, raw string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO responses (symbol, mode, raw_text, model_used, date_generated)
		VALUES (?, ?, ?, ?, ?)`,
		symbol, mode, raw, model, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}
	return nil
}

// ResponseCount reports how many responses are cached.
func (s *Store) ResponseCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM responses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached responses: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
