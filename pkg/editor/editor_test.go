package editor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/japaniel/latindict/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *db.Store) {
	t.Helper()
	s, err := db.Open(context.Background(), filepath.Join(t.TempDir(), db.DefaultPath))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewSession(s, nil), s
}

func TestSubmitTrims(t *testing.T) {
	ctx := context.Background()
	sess, store := newTestSession(t)

	entry, err := sess.Submit(ctx, "  mensa ", "\ttable\n")
	require.NoError(t, err)
	assert.Equal(t, "mensa", entry.Word)
	assert.Equal(t, "table", entry.Definition)

	got, err := store.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestSubmitRejectsBlank(t *testing.T) {
	ctx := context.Background()
	sess, store := newTestSession(t)

	for _, in := range [][2]string{{"", "table"}, {"mensa", "   "}, {" ", ""}} {
		_, err := sess.Submit(ctx, in[0], in[1])
		assert.ErrorIs(t, err, ErrEmptyField)
	}
	words, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestBeginEditDeletesImmediately(t *testing.T) {
	ctx := context.Background()
	sess, store := newTestSession(t)

	entry, err := sess.Submit(ctx, "amor", "love")
	require.NoError(t, err)

	draft, err := sess.BeginEdit(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, Draft{Word: "amor", Definition: "love"}, draft)
	assert.Equal(t, draft, sess.Draft())

	// The record is gone before the edit is confirmed.
	words, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)

	edited, err := sess.Submit(ctx, draft.Word, "love, passion")
	require.NoError(t, err)
	assert.NotEqual(t, entry.ID, edited.ID)
	assert.Equal(t, Draft{}, sess.Draft())
}

func TestBeginEditUnknownID(t *testing.T) {
	sess, _ := newTestSession(t)
	_, err := sess.BeginEdit(context.Background(), 42)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestRenderSorted(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)

	_, err := sess.Submit(ctx, "mensa", "table")
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "amor", "love")
	require.NoError(t, err)

	unsorted, err := sess.Render(ctx, false)
	require.NoError(t, err)
	require.Len(t, unsorted, 2)

	sorted, err := sess.Render(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"amor", "mensa"}, []string{sorted[0].Word, sorted[1].Word})

	// Sorting is a view; stored order is unchanged.
	again, err := sess.Render(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, unsorted, again)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	sess, store := newTestSession(t)

	entry, err := sess.Submit(ctx, "bellum", "war")
	require.NoError(t, err)
	require.NoError(t, sess.Delete(ctx, entry.ID))
	require.NoError(t, sess.Delete(ctx, entry.ID))

	words, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}
