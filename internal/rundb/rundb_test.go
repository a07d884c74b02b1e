package rundb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err, "Open should create and migrate the database")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigratesSchema(t *testing.T) {
	db := openTestDB(t)

	// The runs table must exist after migration.
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='runs'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "runs", name)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	db1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	// Reopening an already-migrated database must not fail.
	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()
}

func TestRecordAndListRuns(t *testing.T) {
	db := openTestDB(t)

	first := NewRun("asc.dgr", "desc.dgr", 90)
	first.StartedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	first.West, first.East, first.South, first.North = 10.0, 10.002, 20.0, 20.002
	first.Width, first.Length = 2, 2
	first.VerticalOut, first.HorizontalOut = "up.dgr", "hz.dgr"
	first.WallMillis = 42
	require.NoError(t, db.RecordRun(first))

	second := NewRun("asc2.dgr", "desc2.dgr", 16)
	second.StartedAt = time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.RecordRun(second))

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, first.RunID, runs[1].RunID)

	got := runs[1]
	assert.Equal(t, "asc.dgr", got.AscendingPath)
	assert.Equal(t, "desc.dgr", got.DescendingPath)
	assert.Equal(t, 90.0, got.Azimuth)
	assert.Equal(t, 10.002, got.East)
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, int64(42), got.WallMillis)
	assert.True(t, got.StartedAt.Equal(first.StartedAt))
}

func TestNewRunAssignsUniqueIDs(t *testing.T) {
	a := NewRun("x", "y", 90)
	b := NewRun("x", "y", 90)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestListRunsLimit(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.RecordRun(NewRun("a", "d", 90)))
	}
	runs, err := db.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
