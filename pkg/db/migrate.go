package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// LegacyKey is the flat-storage key older versions kept the dictionary under.
const LegacyKey = "latinDictionary"

// LegacySource is the flat string-keyed storage being migrated away from.
type LegacySource interface {
	GetItem(key string) (string, bool, error)
	RemoveItem(key string) error
}

// MigrateLegacyIfPresent moves the entries stored under key in src into the
// store and then removes key from src. It does nothing when key is absent or
// holds only whitespace.
//
// A payload that does not parse returns ErrInvalidFormat and leaves both src
// and the store untouched. All entries are written in one transaction, so a
// migration is never partial.
func (s *Store) MigrateLegacyIfPresent(ctx context.Context, src LegacySource, key string) (int, error) {
	if key == "" {
		key = LegacyKey
	}
	raw, ok, err := src.GetItem(key)
	if err != nil {
		return 0, fmt.Errorf("read legacy key %q: %w", key, err)
	}
	// A blank value counts as absent and is left in place.
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, nil
	}

	pairs, err := DecodePairs([]byte(raw))
	if err != nil {
		return 0, fmt.Errorf("legacy key %q: %w", key, err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		for i, p := range pairs {
			if _, err := insertWord(ctx, tx, p.Word, p.Definition); err != nil {
				return fmt.Errorf("migrate entry %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// TODO: a crash between the commit above and this removal re-imports the
	// payload on the next start; record the migration in the database instead.
	if err := src.RemoveItem(key); err != nil {
		return len(pairs), fmt.Errorf("remove legacy key %q: %w", key, err)
	}
	s.logger.Info("legacy dictionary migrated", zap.String("key", key), zap.Int("entries", len(pairs)))
	return len(pairs), nil
}
