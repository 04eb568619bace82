package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add stock locations", "stock location table")
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_stock_locations.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_stock_locations.down.sql"))

		upContent, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(upContent), "add stock locations")

		downContent, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(downContent), "Rollback")
	})

	t.Run("creates missing migrations directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "init", "initial schema")
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_stock_locations", sanitizeName("Add Stock Locations"))
	assert.Equal(t, "fix_invoice_index", sanitizeName("fix--invoice__index!!"))
	assert.Equal(t, "v2_schema", sanitizeName("v2 schema "))
}

func TestListMigrations(t *testing.T) {
	t.Run("lists migration pairs once", func(t *testing.T) {
		dir := t.TempDir()

		_, err := CreateMigration(dir, "first", "")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.True(t, strings.HasSuffix(migrations[0], "_first"))
	})

	t.Run("returns empty for missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
