package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/japaniel/latindict/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *db.Store {
	t.Helper()
	s, err := db.Open(context.Background(), filepath.Join(t.TempDir(), db.DefaultPath))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func pairsIn(t *testing.T, s *db.Store) []db.WordPair {
	t.Helper()
	words, err := s.ListAll(context.Background())
	require.NoError(t, err)
	var out []db.WordPair
	for _, w := range words {
		out = append(out, db.WordPair{Word: w.Word, Definition: w.Definition})
	}
	return out
}

func TestImportFilesGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "nouns.json"), `[{"word":"mensa","definition":"table"}]`)
	writeFile(t, filepath.Join(dir, "b", "deep", "saved.html"), savedListPage)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	s := setupStore(t)
	im := NewImporter(s, nil)
	n, err := im.ImportFiles(context.Background(), filepath.Join(dir, "**", "*.json"), filepath.Join(dir, "**", "*.html"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, []db.WordPair{
		{Word: "mensa", Definition: "table"},
		{Word: "mensa", Definition: "table"},
		{Word: "amor", Definition: "love, affection"},
	}, pairsIn(t, s))
}

func TestImportFilesAllOrNothingParse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1.json"), `[{"word":"aqua","definition":"water"}]`)
	writeFile(t, filepath.Join(dir, "2.json"), `{not json`)

	s := setupStore(t)
	im := NewImporter(s, nil)
	_, err := im.ImportFiles(context.Background(), filepath.Join(dir, "*.json"))
	assert.ErrorIs(t, err, db.ErrInvalidFormat)
	assert.Empty(t, pairsIn(t, s))
}

func TestImportFilesNoMatch(t *testing.T) {
	im := NewImporter(setupStore(t), nil)
	_, err := im.ImportFiles(context.Background(), filepath.Join(t.TempDir(), "*.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandPatternsDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.json"), "[]")
	files, err := ExpandPatterns(filepath.Join(dir, "*.json"), filepath.Join(dir, "x.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "x.json")}, files)
}

func TestImportURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/latin_dictionary.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":9,"word":"nox","definition":"night"}]`))
	})
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(savedListPage))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := setupStore(t)
	im := NewImporter(s, nil)
	im.Client = srv.Client()
	ctx := context.Background()

	n, err := im.ImportURL(ctx, srv.URL+"/latin_dictionary.json")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = im.ImportURL(ctx, srv.URL+"/list")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = im.ImportURL(ctx, srv.URL+"/missing")
	assert.Error(t, err)

	assert.Len(t, pairsIn(t, s), 3)
}
