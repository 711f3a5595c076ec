package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_entries (id INTEGER PRIMARY KEY, title TEXT NOT NULL, notes TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_entries")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["title"].Type)
	assert.Equal(t, "NO", colMap["title"].Null)
	assert.Equal(t, "YES", colMap["notes"].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVerifyColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE entries (id INTEGER PRIMARY KEY, status TEXT)").Error)

	assert.NoError(t, VerifyColumns(db, "entries", []string{"id", "STATUS"}))

	err = VerifyColumns(db, "entries", []string{"id", "status", "score", "notes"})
	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"score", "notes"}, mismatch.Missing)

	err = VerifyColumns(db, "missing_table", []string{"id"})
	require.True(t, errors.As(err, &mismatch))
	assert.Empty(t, mismatch.Missing)
	assert.Contains(t, err.Error(), "does not exist")
}
