package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":      {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)

	require.Len(t, migrations, 2)
	assert.Equal(t, "001_first", migrations[0].Version)
	assert.Equal(t, "002_second.sql", migrations[1].Filename)
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{})
	assert.Error(t, err)
}

func TestInitializeDatabase_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	t.Cleanup(func() { CloseDB() })

	require.NoError(t, InitializeDatabase(dbPath))
	require.NoError(t, RunMigrations(GetDB()))

	applied, err := getAppliedMigrations(GetDB())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_login_audit"}, applied)

	var count int
	require.NoError(t, GetDB().QueryRow("SELECT COUNT(*) FROM login_audit").Scan(&count))
	assert.Equal(t, 0, count)
}
