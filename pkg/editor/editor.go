// Package editor holds the form-level flow of the dictionary editor: input
// trimming, the edit affordance and list rendering.
package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/japaniel/latindict/pkg/db"
	"github.com/japaniel/latindict/pkg/dictionary"
	"go.uber.org/zap"
)

// ErrEmptyField is returned by Submit when the word or definition is blank.
var ErrEmptyField = errors.New("word and definition must be non-empty")

// WordStore is the part of *db.Store the editor uses.
type WordStore interface {
	Add(ctx context.Context, word, definition string) (db.WordEntry, error)
	Get(ctx context.Context, id int64) (db.WordEntry, error)
	ListAll(ctx context.Context) ([]db.WordEntry, error)
	Remove(ctx context.Context, id int64) error
}

// Draft is the content of the entry form.
type Draft struct {
	Word       string
	Definition string
}

// Session is one editing session over a store.
type Session struct {
	store  WordStore
	logger *zap.Logger
	draft  Draft
}

// NewSession returns a Session over store with an empty draft.
func NewSession(store WordStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{store: store, logger: logger}
}

// Draft returns the current form content.
func (s *Session) Draft() Draft { return s.draft }

// Submit trims both fields and adds them as a new entry. Blank input is
// rejected with ErrEmptyField and leaves the draft as it was.
func (s *Session) Submit(ctx context.Context, word, definition string) (db.WordEntry, error) {
	word = strings.TrimSpace(word)
	definition = strings.TrimSpace(definition)
	if word == "" || definition == "" {
		return db.WordEntry{}, ErrEmptyField
	}
	entry, err := s.store.Add(ctx, word, definition)
	if err != nil {
		return db.WordEntry{}, err
	}
	s.draft = Draft{}
	return entry, nil
}

// BeginEdit copies the entry into the draft and deletes it straight away.
// The entry only comes back when the draft is submitted; abandoning the
// edit loses it.
func (s *Session) BeginEdit(ctx context.Context, id int64) (Draft, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	if err := s.store.Remove(ctx, id); err != nil {
		return Draft{}, err
	}
	s.draft = Draft{Word: entry.Word, Definition: entry.Definition}
	s.logger.Debug("entry moved to draft", zap.Int64("id", id), zap.String("word", entry.Word))
	return s.draft, nil
}

// Delete removes an entry.
func (s *Session) Delete(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// Render lists the stored entries, sorted by word when sorted is set.
// Sorting is not persisted.
func (s *Session) Render(ctx context.Context, sorted bool) ([]db.WordEntry, error) {
	words, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if sorted {
		dictionary.SortByWord(words)
	}
	return words, nil
}
