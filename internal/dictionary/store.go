// internal/dictionary/store.go
//
// SQLite-backed word source. Words are stored once, with their rune length
// precomputed so that a new game only loads the words it can use.

package dictionary

import (
	"context"
	"database/sql"
	"unicode/utf8"

	"github.com/robalobadob/hangman/apps/go-server/assets"
)

// Store reads and writes the words table. It implements words.Source.
type Store struct{ db *sql.DB }

// NewStore wraps an open database. Call Migrate first.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// OpenStore opens dsn, applies the embedded migrations and returns a Store.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Import inserts words, ignoring ones already present, and returns how many
// rows were added. The whole batch runs in one transaction.
func (s *Store) Import(ctx context.Context, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, length) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, w, utf8.RuneCountInString(w))
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Count returns the number of stored words.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}

// WordsOfLength returns the stored words with n runes in ascending order.
func (s *Store) WordsOfLength(ctx context.Context, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words WHERE length=? ORDER BY word`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Lengths returns word counts keyed by length.
func (s *Store) Lengths(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT length, COUNT(1) FROM words GROUP BY length`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var n, c int
		if err := rows.Scan(&n, &c); err != nil {
			return nil, err
		}
		out[n] = c
	}
	return out, rows.Err()
}
