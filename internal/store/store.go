// Package store provides the persistence engine for GoStock: named
// tables of JSON records keyed by id, with secondary indexes on declared
// record fields, matching the object stores the extension previously
// kept in IndexedDB.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Table names.
const (
	TablePrompts = "prompts"
	TableFolders = "folders"
	TableConfig  = "config"
)

// Index names. An index name is the JSON field it covers.
const (
	IndexFolderID = "folderId"
	IndexOrder    = "order"
)

// Table declares a named collection and its secondary indexes.
type Table struct {
	Name    string
	Indexes []string
}

// Tables returns the schema: the same three object stores the legacy
// extension kept in IndexedDB (prompts, folders, config).
func Tables() []Table {
	return []Table{
		{Name: TablePrompts, Indexes: []string{IndexFolderID, IndexOrder}},
		{Name: TableFolders, Indexes: []string{IndexOrder}},
		{Name: TableConfig},
	}
}

var (
	// ErrDuplicateKey is returned by Insert when the id is already present.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownTable is returned for a table name outside Tables().
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownIndex is returned for an index not declared on the table.
	ErrUnknownIndex = errors.New("unknown index")
	// ErrMissingID is returned when a record has no usable "id" field.
	ErrMissingID = errors.New("record has no id")
)

// Store defines the interface for data persistence.
// This allows swapping between MemStore (tests and the browser build,
// which persists snapshots separately) and SQLiteStore (native).
// Every call is an independent durable transaction; there
// is no multi-call atomicity, so composite operations above this layer
// must stay safe under partial completion.
type Store interface {
	// GetAll returns every record in the table, in no particular order.
	GetAll(table string) ([]json.RawMessage, error)
	// GetByID returns the record with the given id, or nil when absent.
	GetByID(table, id string) (json.RawMessage, error)
	// GetByIndex returns all records whose indexed field equals value.
	GetByIndex(table, index, value string) ([]json.RawMessage, error)
	// Insert adds a new record; ErrDuplicateKey if the id exists.
	Insert(table string, rec any) error
	// Upsert inserts or replaces the record with the same id.
	Upsert(table string, rec any) error
	// Remove deletes a record; no-op when absent.
	Remove(table, id string) error
	// Clear removes all records in the table.
	Clear(table string) error

	// Lifecycle
	Close() error
}

// lookupTable resolves a table declaration by name.
func lookupTable(name string) (Table, error) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// checkIndex verifies the index is declared on the table.
func checkIndex(t Table, index string) error {
	for _, idx := range t.Indexes {
		if idx == index {
			return nil
		}
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownIndex, t.Name, index)
}

// encodeRecord marshals a record and extracts its id field.
func encodeRecord(rec any) (id string, data []byte, err error) {
	data, err = json.Marshal(rec)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", nil, fmt.Errorf("failed to probe record id: %w", err)
	}
	if probe.ID == "" {
		return "", nil, ErrMissingID
	}
	return probe.ID, data, nil
}

// indexValue extracts the indexed field from a raw record as a string.
// JSON null (the legacy encoding for "no folder") maps to "".
func indexValue(data []byte, field string) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", err
	}
	raw, ok := fields[field]
	if !ok {
		return "", nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return trimFloat(v), nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	default:
		return string(raw), nil
	}
}

func trimFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// ToJSON converts a store record to JSON bytes.
func ToJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// FromJSON parses JSON bytes into a store record.
func FromJSON[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeAll parses a list of raw records into typed values.
func DecodeAll[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
