package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contracts.db")
	db, err := New(Config{Path: path, Profile: ProfileStandard, Name: "contracts"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestMigrate_UnknownDatabaseNameIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := New(Config{Path: path, Profile: ProfileStandard, Name: "not-a-known-database"})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Migrate())
}

func TestHealthCheck_PassesOnFreshDatabase(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestQuickCheck_PassesOnOpenConnection(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.QuickCheck(context.Background()))
}

func TestGetStats_ReportsNonZeroPageSize(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Greater(t, stats.PageSize, int64(0))
}

func TestName_ReturnsConfiguredName(t *testing.T) {
	db := newTestDB(t)
	assert.Equal(t, "contracts", db.Name())
	assert.Equal(t, ProfileStandard, db.Profile())
}
