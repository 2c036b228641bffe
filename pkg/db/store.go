package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultPath is the database file created when no path is configured.
	DefaultPath = "LatinDictionaryDB.db"
	// DriverCGO selects github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPureGo selects modernc.org/sqlite.
	DriverPureGo = "sqlite"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store is the word record store. A Store is obtained from Open and passed
// explicitly to its users; it owns a single database connection so SQLite
// transactions are serialized.
type Store struct {
	conn      *sql.DB
	logger    *zap.Logger
	batchSize int
}

type options struct {
	driver    string
	logger    *zap.Logger
	batchSize int
}

// Option configures Open.
type Option func(*options)

// WithDriver selects the database/sql driver name (DriverCGO or DriverPureGo).
func WithDriver(name string) Option {
	return func(o *options) {
		if name != "" {
			o.driver = name
		}
	}
}

// WithLogger sets the logger for store operations.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBatchSize sets how many imported entries share one transaction.
// Values below 1 mean one transaction per entry.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// Open opens or creates the database at path and ensures the words
// collection exists. Every failure matches ErrStorageUnavailable.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := &options{driver: DriverCGO, logger: zap.NewNop(), batchSize: 1}
	for _, opt := range opts {
		opt(o)
	}
	if path == "" {
		path = DefaultPath
	}
	if o.batchSize < 1 {
		o.batchSize = 1
	}

	conn, err := sql.Open(o.driver, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, path, err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: connect %s: %w", ErrStorageUnavailable, path, err)
	}
	if err := InitDB(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: initialize %s: %w", ErrStorageUnavailable, path, err)
	}

	o.logger.Debug("database opened", zap.String("path", path), zap.String("driver", o.driver))
	return &Store{conn: conn, logger: o.logger, batchSize: o.batchSize}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

func insertWord(ctx context.Context, db DBExecutor, word, definition string) (int64, error) {
	res, err := db.ExecContext(ctx, `INSERT INTO words (word, definition) VALUES (?, ?)`, word, definition)
	if err != nil {
		return 0, fmt.Errorf("insert word: %w", err)
	}
	return res.LastInsertId()
}

// withTx runs fn inside a transaction and commits it.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Add stores a new entry and returns it with its assigned id once the
// transaction has committed. Input is stored as given.
func (s *Store) Add(ctx context.Context, word, definition string) (WordEntry, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertWord(ctx, tx, word, definition)
		return err
	})
	if err != nil {
		return WordEntry{}, err
	}
	s.logger.Debug("word added", zap.Int64("id", id), zap.String("word", word))
	return WordEntry{ID: id, Word: word, Definition: definition}, nil
}

// ListAll returns every stored entry. Rows come back in id order, but
// callers that need an order should sort explicitly.
func (s *Store) ListAll(ctx context.Context) ([]WordEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, word, definition FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	out := []WordEntry{}
	for rows.Next() {
		var w WordEntry
		if err := rows.Scan(&w.ID, &w.Word, &w.Definition); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the entry with the given id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (WordEntry, error) {
	w := WordEntry{ID: id}
	err := s.conn.QueryRowContext(ctx, `SELECT word, definition FROM words WHERE id = ?`, id).Scan(&w.Word, &w.Definition)
	if errors.Is(err, sql.ErrNoRows) {
		return WordEntry{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return WordEntry{}, fmt.Errorf("get word %d: %w", id, err)
	}
	return w, nil
}

// Remove deletes the entry with the given id. Removing an id that is not
// stored is not an error.
func (s *Store) Remove(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete word %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("word removed", zap.Int64("id", id))
	return nil
}
