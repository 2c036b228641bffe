package dictionary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/japaniel/latindict/pkg/db"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PairWriter stores parsed pairs. *db.Store implements it.
type PairWriter interface {
	ImportPairs(ctx context.Context, pairs []db.WordPair) (int, error)
}

// Importer reads dictionaries from files and URLs and writes them to a store.
type Importer struct {
	Store  PairWriter
	Client *http.Client
	Logger *zap.Logger
	// Workers bounds how many files are parsed at once.
	Workers int
}

// NewImporter creates an Importer with default settings.
func NewImporter(store PairWriter, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		Store:   store,
		Logger:  logger,
		Workers: 4,
	}
}

// ExpandPatterns resolves doublestar patterns to a sorted, de-duplicated
// list of files. A pattern without matches is an error.
func ExpandPatterns(patterns ...string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q: %w", p, os.ErrNotExist)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ImportFiles parses every file matched by patterns and, only when all of
// them parsed, writes their entries in path order.
func (im *Importer) ImportFiles(ctx context.Context, patterns ...string) (int, error) {
	files, err := ExpandPatterns(patterns...)
	if err != nil {
		return 0, err
	}

	parsed := make([][]db.WordPair, len(files))
	g, gctx := errgroup.WithContext(ctx)
	workers := im.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f)
			if err != nil {
				return err
			}
			pairs, err := Decode(filepath.Base(f), "", data)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			parsed[i] = pairs
			im.Logger.Debug("parsed dictionary file", zap.String("file", f), zap.Int("entries", len(pairs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var all []db.WordPair
	for _, pairs := range parsed {
		all = append(all, pairs...)
	}
	return im.Store.ImportPairs(ctx, all)
}

// ImportURL downloads a JSON export or HTML list page and writes its entries.
func (im *Importer) ImportURL(ctx context.Context, rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, err
	}
	body, contentType, err := Fetch(ctx, im.Client, rawURL)
	if err != nil {
		return 0, err
	}
	var pairs []db.WordPair
	if isHTML(u.Path, contentType) {
		pairs, err = ParseHTMLList(bytes.NewReader(body), u)
	} else {
		pairs, err = db.DecodePairs(body)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", rawURL, err)
	}
	im.Logger.Info("fetched dictionary", zap.String("url", rawURL), zap.Int("entries", len(pairs)))
	return im.Store.ImportPairs(ctx, pairs)
}
