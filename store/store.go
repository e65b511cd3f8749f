// Package store persists anthology snapshots in SQLite. The collection
// lives in memory; the store holds its durable copy, replaced as a
// whole after each mutation and reloaded at startup.
package store

import (
	"database/sql"

	"github.com/hazyhaar/strophe/dbopen"
)

// Schema contains the complete DDL for the anthology tables.
const Schema = `
CREATE TABLE IF NOT EXISTS poems (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    markup      TEXT NOT NULL DEFAULT '',
    source_name TEXT NOT NULL DEFAULT '',
    word_count  INTEGER NOT NULL,
    fingerprint TEXT NOT NULL,
    added_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_poems_position ON poems(position);
CREATE INDEX IF NOT EXISTS idx_poems_fingerprint ON poems(fingerprint);
`

// Store is the anthology database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the SQLite database at path, applies pragmas
// and the anthology schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}
