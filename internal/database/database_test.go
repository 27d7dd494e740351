package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='documents'").Scan(&tableName)
	require.NoError(t, err, "Querying for documents table should not produce an error")
	assert.Equal(t, "documents", tableName, "The 'documents' table should be created")

	var indexName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_documents_collection_updated'").Scan(&indexName)
	require.NoError(t, err)
	assert.Equal(t, "idx_documents_collection_updated", indexName)
}

func TestInitDB_IsRerunnable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.db")

	db, teardown, err := InitDB(path, "", "")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO documents (collection, id, body, updated_at) VALUES ('players', 'p1', x'80', 1)`)
	require.NoError(t, err)
	teardown()

	db, teardown, err = InitDB(path, "", "")
	require.NoError(t, err, "migrating an up-to-date database should be a no-op")
	defer teardown()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count))
	assert.Equal(t, 1, count, "existing documents must survive a second InitDB")
}
