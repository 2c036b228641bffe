package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// ExportFileName is the file name offered for exported dictionaries.
const ExportFileName = "latin_dictionary.json"

// Export returns all entries, ids included, as an indented JSON array.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	words, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

// DecodePairs parses a JSON array of {word, definition} objects. Other
// fields, including id, are ignored.
func DecodePairs(text []byte) ([]WordPair, error) {
	var pairs []WordPair
	if err := json.Unmarshal(text, &pairs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	// A JSON null decodes without error but is not an array.
	if pairs == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidFormat)
	}
	return pairs, nil
}

// Import parses text as an exported dictionary and adds every entry with a
// fresh id. Nothing is written when text cannot be parsed.
func (s *Store) Import(ctx context.Context, text []byte) (int, error) {
	pairs, err := DecodePairs(text)
	if err != nil {
		return 0, err
	}
	return s.ImportPairs(ctx, pairs)
}

// ImportPairs adds pairs in order. Writes are grouped by the configured
// batch size; the first failing transaction stops the import and the number
// of committed entries is returned with the error.
func (s *Store) ImportPairs(ctx context.Context, pairs []WordPair) (int, error) {
	bw := NewBatchWriter(ctx, s.conn, s.batchSize)
	bw.OnError = func(err error) {
		s.logger.Warn("import batch failed", zap.Error(err))
	}

	var submitErr error
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		if bw.Err() != nil {
			break
		}
		i, p := i, p
		err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			if _, err := insertWord(ctx, tx, p.Word, p.Definition); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}

	closeErr := bw.Close()
	n := bw.Committed()
	if closeErr != nil {
		return n, fmt.Errorf("import: %w", closeErr)
	}
	if submitErr != nil {
		return n, fmt.Errorf("import: %w", submitErr)
	}
	s.logger.Info("import complete", zap.Int("entries", n), zap.Int("batch_size", s.batchSize))
	return n, nil
}
