// SQLite-backed Store using ncruces/go-sqlite3/driver, which provides a
// database/sql interface and compiles for both native and WASM targets.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore is the SQLite-backed data store.
// Thread-safe for concurrent callbacks.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema renders the DDL for every declared table: one row per record
// (id + JSON body) plus expression indexes over the declared fields,
// mirroring the legacy IndexedDB object stores and their indexes.
func schema() string {
	var b strings.Builder
	for _, t := range Tables() {
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, data TEXT NOT NULL);\n", t.Name)
		for _, idx := range t.Indexes {
			fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (json_extract(data, '$.%s'));\n",
				t.Name, idx, t.Name, idx)
		}
	}
	return b.String()
}

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection so ":memory:" stores see one database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetAll(table string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(fmt.Sprintf("SELECT data FROM %s", t.Name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *SQLiteStore) GetByID(table, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = s.db.QueryRow(fmt.Sprintf("SELECT data FROM %s WHERE id = ?", t.Name), id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (s *SQLiteStore) GetByIndex(table, index, value string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(t, index); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	if value == "" {
		// JSON null and "" both mean "unset" for index purposes.
		rows, err = s.db.Query(fmt.Sprintf(
			"SELECT data FROM %s WHERE json_extract(data, '$.%s') IS NULL OR json_extract(data, '$.%s') = ''",
			t.Name, index, index))
	} else {
		rows, err = s.db.Query(fmt.Sprintf(
			"SELECT data FROM %s WHERE json_extract(data, '$.%s') = ?", t.Name, index), value)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *SQLiteStore) Insert(table string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := lookupTable(table)
	if err != nil {
		return err
	}
	id, data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf("INSERT INTO %s (id, data) VALUES (?, ?)", t.Name), id, string(data))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, table, id)
		}
		return err
	}
	return nil
}

func (s *SQLiteStore) Upsert(table string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := lookupTable(table)
	if err != nil {
		return err
	}
	id, data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, t.Name), id, string(data))
	return err
}

func (s *SQLiteStore) Remove(table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := lookupTable(table)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.Name), id)
	return err
}

func (s *SQLiteStore) Clear(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := lookupTable(table)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf("DELETE FROM %s", t.Name))
	return err
}

func scanRecords(rows *sql.Rows) ([]json.RawMessage, error) {
	var result []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(data))
	}
	return result, rows.Err()
}

// Compile-time interface check
var _ Store = (*SQLiteStore)(nil)
