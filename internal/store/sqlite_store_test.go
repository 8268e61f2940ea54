package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SQLite-specific Tests
// =============================================================================

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "gostock.db")

	s, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Insert(TablePrompts, testRecord{ID: "p1", Title: "durable", FolderID: "f1"}))
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	defer s2.Close()

	raw, err := s2.GetByID(TablePrompts, "p1")
	require.NoError(t, err)
	require.NotNil(t, raw)

	got, err := FromJSON[testRecord](raw)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Title)

	byFolder, err := s2.GetByIndex(TablePrompts, IndexFolderID, "f1")
	require.NoError(t, err)
	assert.Len(t, byFolder, 1)
}

func TestSQLiteStoreSchemaIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "gostock.db")

	s, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Opening an existing database re-runs the DDL; it must be a no-op.
	s2, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}
