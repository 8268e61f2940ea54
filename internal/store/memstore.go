package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory implementation of Store. Tests use it
// everywhere; the browser build uses it too, persisting snapshots to
// IndexedDB between sessions.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]json.RawMessage
}

// NewMemStore creates a new in-memory store with all tables empty.
func NewMemStore() *MemStore {
	tables := make(map[string]map[string]json.RawMessage)
	for _, t := range Tables() {
		tables[t.Name] = make(map[string]json.RawMessage)
	}
	return &MemStore{tables: tables}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) table(name string) (map[string]json.RawMessage, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

func (s *MemStore) GetAll(table string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.table(table)
	if err != nil {
		return nil, err
	}
	result := make([]json.RawMessage, 0, len(t))
	for _, data := range t {
		result = append(result, cloneRaw(data))
	}
	return result, nil
}

func (s *MemStore) GetByID(table, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.table(table)
	if err != nil {
		return nil, err
	}
	data, ok := t[id]
	if !ok {
		return nil, nil
	}
	return cloneRaw(data), nil
}

func (s *MemStore) GetByIndex(table, index, value string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decl, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(decl, index); err != nil {
		return nil, err
	}
	t := s.tables[table]

	var result []json.RawMessage
	for _, data := range t {
		v, err := indexValue(data, index)
		if err != nil {
			return nil, err
		}
		if v == value {
			result = append(result, cloneRaw(data))
		}
	}
	return result, nil
}

func (s *MemStore) Insert(table string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(table)
	if err != nil {
		return err
	}
	id, data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if _, exists := t[id]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, table, id)
	}
	t[id] = data
	return nil
}

func (s *MemStore) Upsert(table string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(table)
	if err != nil {
		return err
	}
	id, data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	t[id] = data
	return nil
}

func (s *MemStore) Remove(table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(table)
	if err != nil {
		return err
	}
	delete(t, id)
	return nil
}

func (s *MemStore) Clear(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.table(table); err != nil {
		return err
	}
	s.tables[table] = make(map[string]json.RawMessage)
	return nil
}

// cloneRaw copies raw JSON so callers can't mutate stored bytes.
func cloneRaw(data json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out
}

// Compile-time interface check
var _ Store = (*MemStore)(nil)
