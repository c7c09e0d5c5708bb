package gormrepo

import (
	"testing"
	"testing/fstest"

	"hazardplan/db/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_more.sql":  {Data: []byte("SELECT 1;")},
		"0001_init.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
		"nested/003.sql": {Data: []byte("SELECT 1;")},
	}

	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_more.sql"}, names)
}

func TestMigrationFiles_EmbeddedSchema(t *testing.T) {
	names, err := migrationFiles(migrations.FS)
	require.NoError(t, err)
	assert.Contains(t, names, "0001_init.sql")
}
