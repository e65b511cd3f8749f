package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hazyhaar/strophe/anthology"
	"github.com/hazyhaar/strophe/dbopen"
)

// Save replaces the stored snapshot with recs in collection order.
// Positions are rewritten 1-based, so the table always mirrors the
// in-memory collection exactly.
func (s *Store) Save(ctx context.Context, recs []anthology.Record) error {
	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM poems`); err != nil {
			return fmt.Errorf("clear poems: %w", err)
		}
		for i, rec := range recs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO poems (id, position, title, content, markup, source_name, word_count, fingerprint, added_at)
				VALUES (?,?,?,?,?,?,?,?,?)`,
				rec.ID, i+1, rec.Title, rec.Content, rec.Markup, rec.SourceName,
				rec.WordCount, rec.Fingerprint, rec.AddedAt.UTC().Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("insert poem %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

// Load returns the stored snapshot in collection order.
func (s *Store) Load(ctx context.Context) ([]anthology.Record, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, content, markup, source_name, word_count, fingerprint, added_at
		FROM poems ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []anthology.Record
	for rows.Next() {
		var rec anthology.Record
		var addedAt string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Content, &rec.Markup,
			&rec.SourceName, &rec.WordCount, &rec.Fingerprint, &addedAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parse added_at for %s: %w", rec.ID, err)
		}
		rec.AddedAt = t
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of stored poems.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM poems`).Scan(&n)
	return n, err
}
