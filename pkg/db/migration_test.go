package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/japaniel/latindict/pkg/legacy"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitDBCreatesSchema verifies InitDB creates the words table with the
// expected columns and records schema version 1.
func TestInitDBCreatesSchema(t *testing.T) {
	ctx := context.Background()
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	if err := InitDB(ctx, dbConn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	// Second run must be a no-op.
	if err := InitDB(ctx, dbConn); err != nil {
		t.Fatalf("InitDB rerun failed: %v", err)
	}

	var version int
	if err := dbConn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("user_version: %v", err)
	}
	if version != SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", SchemaVersion, version)
	}

	rows, err := dbConn.Query("PRAGMA table_info(words)")
	if err != nil {
		t.Fatalf("pragmas: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk); err != nil {
			t.Fatalf("scan col: %v", err)
		}
		cols[colName] = true
	}
	for _, c := range []string{"id", "word", "definition"} {
		if !cols[c] {
			t.Fatalf("expected column %s in words, got %v", c, cols)
		}
	}
}

func TestMigrateLegacyIfPresent(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	src := legacy.NewMemoryStore()
	require.NoError(t, src.SetItem(LegacyKey, `[{"word":"mensa","definition":"table"},{"word":"amor","definition":"love"}]`))

	n, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, err := src.GetItem(LegacyKey)
	require.NoError(t, err)
	assert.False(t, ok, "legacy key must be removed after migration")

	// Second run finds no key and imports nothing.
	n, err = s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	require.NoError(t, err)
	assert.Zero(t, n)

	words, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WordPair{{"mensa", "table"}, {"amor", "love"}}, pairsOf(words))
}

func TestMigrateLegacyAbsent(t *testing.T) {
	s := setupTestStore(t)
	n, err := s.MigrateLegacyIfPresent(context.Background(), legacy.NewMemoryStore(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrateLegacyEmptyValue(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	for _, raw := range []string{"", "  \n"} {
		src := legacy.NewMemoryStore()
		require.NoError(t, src.SetItem(LegacyKey, raw))

		n, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
		require.NoError(t, err)
		assert.Zero(t, n)

		v, ok, err := src.GetItem(LegacyKey)
		require.NoError(t, err)
		assert.True(t, ok, "blank legacy key is left in place")
		assert.Equal(t, raw, v)
	}

	words, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestMigrateLegacyNullKeepsKey(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	src := legacy.NewMemoryStore()
	require.NoError(t, src.SetItem(LegacyKey, "null"))

	_, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, ok, err := src.GetItem(LegacyKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrateLegacyMalformedKeepsKey(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	src := legacy.NewMemoryStore()
	require.NoError(t, src.SetItem(LegacyKey, "{not json"))

	_, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	v, ok, err := src.GetItem(LegacyKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", v)

	words, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestMigrateLegacyFromFile(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	src := legacy.NewFileStore(filepath.Join(t.TempDir(), legacy.DefaultPath))
	require.NoError(t, src.SetItem(LegacyKey, `[{"word":"bellum","definition":"war"}]`))

	n, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := src.GetItem(LegacyKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingRemove struct {
	*legacy.MemoryStore
}

func (f failingRemove) RemoveItem(string) error { return errors.New("read-only storage") }

func TestMigrateLegacyRemoveFailure(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	src := failingRemove{legacy.NewMemoryStore()}
	require.NoError(t, src.SetItem(LegacyKey, `[{"word":"pax","definition":"peace"}]`))

	n, err := s.MigrateLegacyIfPresent(ctx, src, LegacyKey)
	require.Error(t, err)
	assert.Equal(t, 1, n)
}
