package sqlite

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Migrate(db))

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'ux_notifications_sent_once'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "ux_notifications_sent_once", name)

	for _, table := range []string{"users", "categories", "schedules", "notifications_sent", "contacts"} {
		var count int
		err := db.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}

	var categories int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM categories`).Scan(&categories))
	assert.Equal(t, 4, categories)

	t.Run("running again is a no-op", func(t *testing.T) {
		require.NoError(t, Migrate(db))
	})
}

func Test_checkComments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "plain comment",
			content: "-- users table\nCREATE TABLE a (id TEXT);\n",
		},
		{
			name:    "semicolon in statement only",
			content: "CREATE TABLE a (id TEXT);\nCREATE INDEX ix ON a(id);\n",
		},
		{
			name:    "semicolon in comment",
			content: "-- first; second\nCREATE TABLE a (id TEXT);\n",
			wantErr: true,
		},
		{
			name:    "indented comment",
			content: "CREATE TABLE a (\n    -- id; primary\n    id TEXT\n);\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"sql/000001_a.sql": {Data: []byte(tt.content)}}

			err := checkComments(fsys, "sql")
			if tt.wantErr {
				assert.ErrorContains(t, err, "sql/000001_a.sql")
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("embedded migrations pass", func(t *testing.T) {
		assert.NoError(t, checkComments(SqlFiles, sqlDir))
	})
}
